package streamkit

import (
	"errors"
	"io"
)

// ErrReadOnly is returned when a write is attempted on a read-only stream.
var ErrReadOnly = errors.New("stream is read-only")

// ReadOnlyStream wraps a Stream to prevent all write operations.
// This is useful for:
// - Providing safe read-only views of container entries
// - Handing a shared stream to code that must not modify it
// - Testing scenarios where writes should be prevented
//
// Example:
//
//	w, _ := streamkit.New(f, 512, streamkit.WithLength(1024))
//	readOnly := streamkit.NewReadOnlyStream(w)
//
//	// Read operations work normally
//	data, _ := io.ReadAll(readOnly)
//
//	// Write operations return ErrReadOnly
//	_, err := readOnly.Write(data)
//	// err wraps ErrReadOnly
type ReadOnlyStream struct {
	s Stream
}

// NewReadOnlyStream creates a read-only wrapper around a stream. Reads,
// seeks and flushes delegate; writes fail with ErrReadOnly.
func NewReadOnlyStream(s Stream) *ReadOnlyStream {
	return &ReadOnlyStream{s: s}
}

// Unwrap returns the underlying stream.
// This allows access to the original stream if needed.
func (r *ReadOnlyStream) Unwrap() Stream {
	return r.s
}

// IsReadOnly returns true, indicating this is a read-only stream.
func (r *ReadOnlyStream) IsReadOnly() bool {
	return true
}

// Read delegates to the underlying stream.
func (r *ReadOnlyStream) Read(p []byte) (int, error) {
	return r.s.Read(p)
}

// Seek delegates to the underlying stream.
func (r *ReadOnlyStream) Seek(offset int64, whence int) (int64, error) {
	return r.s.Seek(offset, whence)
}

// Flush delegates to the underlying stream. Flushing cannot modify content,
// so it is permitted in read-only mode.
func (r *ReadOnlyStream) Flush() error {
	return r.s.Flush()
}

// Write returns ErrReadOnly.
func (r *ReadOnlyStream) Write(p []byte) (int, error) {
	pos, err := r.s.Seek(0, io.SeekCurrent)
	if err != nil {
		pos = 0
	}
	return 0, &OffsetError{Op: "write", Offset: pos, Err: ErrReadOnly}
}

// Size delegates to the underlying stream if supported.
func (r *ReadOnlyStream) Size() (int64, error) {
	if sizer, ok := r.s.(CanSize); ok {
		return sizer.Size()
	}
	return 0, ErrNotSupported
}

// Ensure ReadOnlyStream implements Stream
var (
	_ Stream  = (*ReadOnlyStream)(nil)
	_ CanSize = (*ReadOnlyStream)(nil)
)

// IsReadOnlyError checks if an error is due to read-only restrictions.
func IsReadOnlyError(err error) bool {
	return errors.Is(err, ErrReadOnly)
}
