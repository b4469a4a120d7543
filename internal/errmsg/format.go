// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpSeek       Op = "seek"
	OpResume     Op = "resume playback"
	OpPause      Op = "pause playback"
	OpVolume     Op = "change volume"
	OpFullscreen Op = "toggle fullscreen"

	// Media operations
	OpLoadVideo    Op = "load video"
	OpLoadSubtitle Op = "load subtitles"
	OpReload       Op = "reload subtitles"
	OpExtract      Op = "extract embedded subtitles"

	// Settings
	OpParseRepeat Op = "parse repeat count"
	OpParseDelay  Op = "parse subtitle delay"
	OpLoadConfig  Op = "load configuration"

	// Startup
	OpStartPlayer Op = "start player"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error carries an operation and its context with the cause. Its message is
// FormatWith's; errors.Is and errors.As see through it.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string {
	return FormatWith(e.Op, e.Context, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err annotated with op and context, or nil when err is nil.
func Wrap(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}
