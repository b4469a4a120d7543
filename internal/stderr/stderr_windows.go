//go:build windows

// Package stderr is a no-op on Windows, where the console is not shared with
// the TUI in the same way.
package stderr

import "os"

// Messages never receives anything on Windows.
var Messages = make(chan Line)

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes Messages.
func Stop() {
	select {
	case <-Messages:
	default:
		close(Messages)
	}
}
