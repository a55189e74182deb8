package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can react without parsing messages.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindInvalidInput
	KindInvalidData
	KindNotFound
	KindOutOfSpace
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidData  = errors.New("invalid data")
	ErrNotFound     = errors.New("not found")
	ErrOutOfSpace   = errors.New("not enough free space")
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindInvalidData:
		return "invalid data"
	case KindNotFound:
		return "not found"
	case KindOutOfSpace:
		return "out of space"
	default:
		return "i/o"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindInvalidData:
		return ErrInvalidData
	case KindNotFound:
		return ErrNotFound
	case KindOutOfSpace:
		return ErrOutOfSpace
	default:
		return nil
	}
}

// Error is the structured error returned across package boundaries.
type Error struct {
	Kind ErrorKind
	Op   string // operation, e.g. "split" or "load"
	Path string // file involved, may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError wraps err with a kind and operation.
func NewError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Errorf builds an *Error whose cause is a formatted message.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain, KindIO otherwise.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}
