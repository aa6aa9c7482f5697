package template

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// All of these are detected while parsing or resolving a template body,
// before any context item is evaluated. A malformed template is therefore
// reported once at configuration load, not once per rendered item.
var (
	ErrLex              = NewError("unrecognized character")
	ErrParse            = NewError("parse error")
	ErrAliasCycle       = NewError("alias expansion cycle")
	ErrAliasDecl        = NewError("invalid alias declaration")
	ErrUnknownMethod    = NewError("unknown method")
	ErrUnresolvedName   = NewError("unresolved name")
	ErrArity            = NewError("wrong argument count")
	ErrType             = NewError("type mismatch")
	ErrTemplateNotFound = NewError("template not found")
)

// Error represents an engine error with optional structured logging
// attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
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

// Is reports whether target is the same sentinel this error derives from.
// Derived errors produced by With, Wrap, and WithPosition share the base
// message, so sentinel identity compares messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg == t.msg
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
		attrs: e.attrs, // share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
// Attributes with an empty key are dropped.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	newAttrs = append(newAttrs, e.attrs...)

	for _, a := range attrs {
		if a.Key == "" {
			continue
		}

		newAttrs = append(newAttrs, a)
	}

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// WithPosition adds a source position attribute to the error.
func (e *Error) WithPosition(pos Position) *Error {
	return e.With(
		slog.Any("position", pos),
		slog.Int("offset", pos.Offset),
	)
}
