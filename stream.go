package streamkit

import (
	"context"
	"io"
)

// ============================================================================
// Core Interfaces (Interface Segregation)
// ============================================================================

// Flusher is the interface for streams that buffer writes and can force them
// out to the underlying medium.
type Flusher interface {
	// Flush forces any buffered data out to the underlying medium.
	Flush() error
}

// Stream is the full capability set a Window requires from an underlying
// resource: positioned reads and writes, absolute seeking, and flushing.
//
// Read and Write follow the usual io contracts: partial results are a normal,
// not erroneous, outcome. Seek interprets offsets per io.SeekStart,
// io.SeekCurrent and io.SeekEnd.
//
// A Window itself satisfies Stream, so windows are substitutable anywhere a
// plain stream is expected and can be nested.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	Flusher
}

// ReadStream provides read-only access to a seekable stream.
// Use this type in function signatures to enforce read-only at compile time.
type ReadStream interface {
	io.Reader
	io.Seeker
}

// WriteStream provides write access to a seekable stream.
type WriteStream interface {
	io.Writer
	io.Seeker
	Flusher
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// These interfaces allow streams to expose optional capabilities.
// Use a type assertion to check if a stream supports a capability:
//
//	if sizer, ok := s.(CanSize); ok {
//	    n, err := sizer.Size()
//	}

// CanSize indicates the stream knows its current total size without the
// cursor having to be moved. Windows use it to resolve from-end seeks
// cheaply; streams without it are probed with a seek to the end instead.
type CanSize interface {
	// Size returns the current total size of the stream in bytes.
	Size() (int64, error)
}

// CanWatch indicates the stream can signal changes to the underlying
// resource, such as another process appending to a shared file. Useful in
// combination with unbounded windows configured with WithLiveEnd.
type CanWatch interface {
	// Watch returns a change token that signals when the underlying
	// resource changes. Cancel the context to release watch resources.
	Watch(ctx context.Context) (ChangeToken, error)
}
