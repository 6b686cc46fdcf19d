// Package fserr classifies the failures a filesystem operation can hit,
// so callers can map them to POSIX errnos or exit codes without parsing
// message text. Absence of a row and unavailability of the database are
// distinct kinds; they must never be conflated.
package fserr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind uint8

const (
	// KindUnknown marks errors that did not originate here.
	KindUnknown Kind = iota
	// KindInvalidPath means the path can never name anything: it is not
	// the root and not "/" followed by decimal digits.
	KindInvalidPath
	// KindNotFound means the path is well formed but no row matches it.
	KindNotFound
	// KindIsDirectory means a file operation was aimed at the root.
	KindIsDirectory
	// KindNotDirectory means a directory operation was aimed at a record.
	KindNotDirectory
	// KindReadOnly means the operation implied a write.
	KindReadOnly
	// KindStorageUnavailable means the database could not answer.
	KindStorageUnavailable
	// KindConfig means the run configuration is unusable.
	KindConfig
	// KindOutOfResources means an allocation or handle limit was hit.
	KindOutOfResources
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindInvalidPath:        "invalid path",
	KindNotFound:           "not found",
	KindIsDirectory:        "is a directory",
	KindNotDirectory:       "not a directory",
	KindReadOnly:           "read-only filesystem",
	KindStorageUnavailable: "storage unavailable",
	KindConfig:             "configuration",
	KindOutOfResources:     "out of resources",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error carries a Kind alongside the underlying error. Match the kind
// with KindOf or errors.As; match wrapped causes with errors.Is.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// InvalidPath reports a path that can never name a row or the root.
func InvalidPath(format string, args ...any) *Error {
	return newError(KindInvalidPath, format, args...)
}

// NotFound reports a well-formed path with no matching row.
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// IsDirectory reports a file operation aimed at the root.
func IsDirectory(format string, args ...any) *Error {
	return newError(KindIsDirectory, format, args...)
}

// NotDirectory reports a directory operation aimed at a record.
func NotDirectory(format string, args ...any) *Error {
	return newError(KindNotDirectory, format, args...)
}

// ReadOnly reports a rejected write.
func ReadOnly(format string, args ...any) *Error {
	return newError(KindReadOnly, format, args...)
}

// Storage reports a database failure. Supports %w.
func Storage(format string, args ...any) *Error {
	return newError(KindStorageUnavailable, format, args...)
}

// Config reports unusable configuration. Supports %w.
func Config(format string, args ...any) *Error {
	return newError(KindConfig, format, args...)
}

// OutOfResources reports an exhausted allocation or handle limit.
func OutOfResources(format string, args ...any) *Error {
	return newError(KindOutOfResources, format, args...)
}

// KindOf extracts the Kind from anywhere in err's chain, or
// KindUnknown if no *Error is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
