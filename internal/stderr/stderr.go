//go:build !windows

// Package stderr redirects file descriptor 2 while the TUI owns the terminal.
// The player process inherits the redirected descriptor, so its diagnostics
// arrive on Messages as lines tagged with the module that printed them.
package stderr

import (
	"bufio"
	"os"
	"syscall"
)

// Messages receives captured lines. It is closed by Stop.
var Messages = make(chan Line, 100)

var (
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	drained    chan struct{}
	started    bool
)

// Start begins capturing. Processes spawned afterwards with os.Stderr as
// their error stream write into the capture too. On error nothing is
// redirected and output keeps going to the terminal.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	fd, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(fd)
		r.Close()
		w.Close()
		return err
	}

	origStderr = fd
	pipeRead = r
	pipeWrite = w
	started = true
	drained = make(chan struct{})

	go forward(r, drained)
	return nil
}

func forward(r *os.File, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		select {
		case Messages <- line:
		default:
			// Full: drop rather than block the writer.
		}
	}
}

// WriteOriginal writes to the terminal even while capturing.
func WriteOriginal(msg string) {
	if origStderr >= 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop restores fd 2 and closes Messages once every writer, including
// spawned processes, has released the pipe.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	<-drained
	pipeRead.Close()

	close(Messages)
	started = false
}
