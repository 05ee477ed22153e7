package streamkit

import (
	"errors"
	"fmt"
)

// Common stream errors
var (
	ErrInvalidOffset  = errors.New("invalid offset")
	ErrInvalidWhence  = errors.New("invalid whence")
	ErrOffsetOverflow = errors.New("offset overflows the address space")
	ErrInvalidSize    = errors.New("invalid size")
	ErrNotSupported   = errors.New("operation not supported")
	ErrExist          = errors.New("segment already exists")
	ErrNotExist       = errors.New("segment does not exist")
	ErrClosed         = errors.New("stream already closed")
)

// OffsetError records an error and the operation and offset that caused it.
// It wraps errors raised by the coordinate layer itself; errors returned by
// an underlying stream are propagated unchanged, never wrapped.
type OffsetError struct {
	Op     string
	Offset int64
	Err    error
}

// Error implements the error interface
func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *OffsetError) Unwrap() error {
	return e.Err
}

// SegmentError records an error and the operation and segment name that
// caused it
type SegmentError struct {
	Op   string
	Name string
	Err  error
}

// Error implements the error interface
func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error
func (e *SegmentError) Unwrap() error {
	return e.Err
}

// IsInvalidOffset reports whether an error indicates a seek or window target
// outside the representable range, such as a position before the window start
func IsInvalidOffset(err error) bool {
	return errors.Is(err, ErrInvalidOffset)
}

// IsOverflow reports whether an error indicates offset arithmetic that would
// exceed the address space
func IsOverflow(err error) bool {
	return errors.Is(err, ErrOffsetOverflow)
}

// IsNotExist reports whether an error indicates that a segment does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsExist reports whether an error indicates that a segment already exists
func IsExist(err error) bool {
	return errors.Is(err, ErrExist)
}
