// Package errdefs defines the error categories shared by every confsync
// operation. Callers match categories with errors.Is and render the full
// message with Error().
package errdefs

import (
	"errors"
	"fmt"
)

// Category sentinels. Operational errors returned by confsync packages wrap
// exactly one of these.
var (
	ErrNotFound       = errors.New("not found")
	ErrNotAFile       = errors.New("not a regular file")
	ErrDuplicateAlias = errors.New("alias already tracked")
	ErrDuplicatePath  = errors.New("path already tracked")
	ErrWouldOverwrite = errors.New("destination already exists")
	ErrConfigCorrupt  = errors.New("config file is corrupt")
	ErrIO             = errors.New("i/o failure")
)

// Error carries a category sentinel together with human-readable detail and
// an optional underlying cause.
type Error struct {
	Kind   error
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg = e.Detail + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is this error's category, so that
// errors.Is(err, ErrNotFound) works without unwrapping the cause chain.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Cause }

// NotFound reports a missing alias, file, or repository entry.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Detail: fmt.Sprintf(format, args...)}
}

// NotAFile reports a path that resolved to something other than a regular
// file, such as a directory or a socket.
func NotAFile(format string, args ...any) error {
	return &Error{Kind: ErrNotAFile, Detail: fmt.Sprintf(format, args...)}
}

// DuplicateAlias reports an alias that is already present in the registry.
func DuplicateAlias(format string, args ...any) error {
	return &Error{Kind: ErrDuplicateAlias, Detail: fmt.Sprintf(format, args...)}
}

// DuplicatePath reports a path that another alias already tracks.
func DuplicatePath(format string, args ...any) error {
	return &Error{Kind: ErrDuplicatePath, Detail: fmt.Sprintf(format, args...)}
}

// WouldOverwrite reports a restore destination that exists while overwriting
// was not requested.
func WouldOverwrite(format string, args ...any) error {
	return &Error{Kind: ErrWouldOverwrite, Detail: fmt.Sprintf(format, args...)}
}

// ConfigCorrupt reports a config document that exists but cannot be decoded.
func ConfigCorrupt(cause error, format string, args ...any) error {
	return &Error{Kind: ErrConfigCorrupt, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// IO wraps an underlying filesystem or process error.
func IO(cause error, format string, args ...any) error {
	return &Error{Kind: ErrIO, Detail: fmt.Sprintf(format, args...), Cause: cause}
}
