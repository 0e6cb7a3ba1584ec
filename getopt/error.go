package getopt

import (
	"errors"
	"log/slog"
	"strings"
)

// Parse failures. Match them with [errors.Is]; the concrete error returned by
// the parser is a [*FlagError] naming the offending flag.
var (
	ErrOptionNotDefined = NewError("is not defined")
	ErrArgumentRejected = NewError("does not accept an argument")
	ErrArgumentRequired = NewError("requires an argument")
)

// Other sentinel errors.
var (
	ErrInvalidMode = NewError("invalid argument mode")
	ErrSplit       = NewError("split command line")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from with
// [Error.Wrap] or [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) != 0 {
		return false
	}

	return e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// FlagError is a parse failure caused by one flag exactly as it was typed,
// e.g. "-x" or "--long-name".
type FlagError struct {
	// Flag is the offending flag in its typed dash form.
	Flag string

	kind    *Error
	suggest []string
}

func newFlagError(kind *Error, flag string) *FlagError {
	return &FlagError{Flag: flag, kind: kind}
}

// Error returns "<flag> <reason>.", e.g. "-z is not defined.".
func (e *FlagError) Error() string {
	return e.Flag + " " + e.kind.msg + "."
}

// Unwrap returns the failure kind: one of [ErrOptionNotDefined],
// [ErrArgumentRejected], or [ErrArgumentRequired].
func (e *FlagError) Unwrap() error { return e.kind }

// Suggestions returns registered flags resembling an undefined flag.
func (e *FlagError) Suggestions() []string { return e.suggest }

// LogValue implements slog.LogValuer.
func (e *FlagError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Error()),
		slog.String("flag", e.Flag),
	}

	if len(e.suggest) > 0 {
		attrs = append(attrs, slog.Any("suggest", e.suggest))
	}

	return slog.GroupValue(attrs...)
}
