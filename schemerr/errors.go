// Package schemerr classifies the handful of conditions that abort a
// conversion outright, as opposed to the conditions the pipeline recovers
// from silently.
package schemerr

import (
	"errors"
	"fmt"
)

// Kind distinguishes the fatal failure modes a conversion can hit.
type Kind int

const (
	// MalformedContainer means the input bytes are not a well-formed tag
	// tree, or a required field is missing or has the wrong tag type.
	MalformedContainer Kind = iota
	// UnknownDialect means the root compound matches none of the known
	// schematic dialects.
	UnknownDialect
	// DimensionMismatch means a decoded array's length is inconsistent
	// with the declared volume dimensions.
	DimensionMismatch
	// UnsupportedEncoding means a recognised field uses an encoding this
	// version of schemwright does not decode (e.g. a palette index width
	// outside the supported range).
	UnsupportedEncoding
)

func (k Kind) String() string {
	switch k {
	case MalformedContainer:
		return "malformed container"
	case UnknownDialect:
		return "unknown dialect"
	case DimensionMismatch:
		return "dimension mismatch"
	case UnsupportedEncoding:
		return "unsupported encoding"
	default:
		return "unknown error kind"
	}
}

// Error is a fatal, classified conversion failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with no underlying cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a classified error that chains an underlying cause.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is, or wraps, a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
