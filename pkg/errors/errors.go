package errors

import (
	"fmt"
)

// New returns an error with the given formatted message.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ContextError annotates an error with what the caller was doing when the
// error occurred. Chains of ContextErrors read outermost-first, e.g.
// "parse config: read file: permission denied".
type ContextError struct {
	Context string
	Err     error
}

// WithContext annotates err with the given context string.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

func (err ContextError) Error() string {
	return fmt.Sprintf("%s: %s", err.Context, err.Err)
}

// RootCause strips any context annotations and returns the underlying error.
// Callers use it to type switch on the error kinds defined in types.go.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ctxErr.Err
	}
}

// FriendlyError is an error whose message is written for end users. The
// top-level error reporter prints it verbatim rather than as an error chain.
type FriendlyError struct {
	Message string
}

// NewFriendlyError creates a new FriendlyError with the given formatted
// message.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}

func (err FriendlyError) Error() string {
	return err.Message
}

// FriendlyMessage implements the friendly interface.
func (err FriendlyError) FriendlyMessage() string {
	return err.Message
}

// friendly is implemented by errors that carry a remediation message meant
// for direct display.
type friendly interface {
	FriendlyMessage() string
}

// GetPrintableMessage returns the message that should be shown to the user
// for err: the friendly message if the root cause provides one, and the
// plain error string otherwise.
func GetPrintableMessage(err error) string {
	if f, ok := RootCause(err).(friendly); ok {
		return f.FriendlyMessage()
	}
	return err.Error()
}
