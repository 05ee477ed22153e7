package streamkit

import (
	"io"
	"sync"
)

// ============================================================================
// SharedHandle - Cursor Synchronization
// ============================================================================

// SharedHandle wraps a Stream so that multiple windows (or other callers) can
// share its single cursor safely. The cursor of the underlying stream is
// process-wide state relative to that stream: any holder's seek moves it for
// everyone. The handle therefore serializes operations with a mutex and
// positions the cursor at the caller's absolute offset before delegating.
//
// Two synchronization policies exist:
//
//   - lazy (default): the handle tracks the last absolute position the
//     underlying cursor is known to be at and seeks only when the requested
//     offset differs. Safe as long as all access goes through the handle.
//   - always: the handle seeks before every operation, never trusting the
//     tracked position. Use WithHandleAlwaysSeek when external code may touch
//     the underlying stream directly and calling Invalidate is impractical.
//
// The zero value is not usable; construct with NewSharedHandle.
type SharedHandle struct {
	mu     sync.Mutex
	s      Stream
	pos    int64 // last known absolute cursor position
	known  bool  // pos is trustworthy
	always bool  // seek before every operation
}

// HandleOption is a functional option for configuring a SharedHandle.
type HandleOption func(*SharedHandle)

// WithHandleAlwaysSeek makes the handle seek the underlying stream before
// every operation instead of tracking the cursor position. Correctness-first:
// redundant seeks are performed, but interleaved direct access to the
// underlying stream can never cause a misdirected read or write.
func WithHandleAlwaysSeek() HandleOption {
	return func(h *SharedHandle) {
		h.always = true
	}
}

// NewSharedHandle wraps s in a mutually-exclusive handle suitable for sharing
// between multiple windows. All access to s must go through the handle (or be
// followed by a call to Invalidate) for cursor tracking to stay correct.
func NewSharedHandle(s Stream, opts ...HandleOption) *SharedHandle {
	h := &SharedHandle{s: s}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ReadAt reads up to len(p) bytes from the underlying stream starting at
// absolute offset off, returning the number of bytes read. Unlike io.ReaderAt
// it keeps the underlying stream's partial-read semantics: n < len(p) with a
// nil error is a normal outcome.
func (h *SharedHandle) ReadAt(p []byte, off int64) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.seekTo(off); err != nil {
		return 0, err
	}
	n, err := h.s.Read(p)
	h.settle(int64(n), err == nil || err == io.EOF)
	return n, err
}

// WriteAt writes up to len(p) bytes to the underlying stream starting at
// absolute offset off, returning the number of bytes written. Partial writes
// are reported as the underlying stream reports them.
func (h *SharedHandle) WriteAt(p []byte, off int64) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.seekTo(off); err != nil {
		return 0, err
	}
	n, err := h.s.Write(p)
	h.settle(int64(n), err == nil)
	return n, err
}

// End returns the current absolute end offset of the underlying stream.
// Streams implementing CanSize are asked directly, leaving the cursor alone;
// otherwise the end is discovered with a from-end seek.
func (h *SharedHandle) End() (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sizer, ok := h.s.(CanSize); ok {
		return sizer.Size()
	}
	end, err := h.s.Seek(0, io.SeekEnd)
	if err != nil {
		h.known = false
		return 0, err
	}
	h.pos = end
	h.known = true
	return end, nil
}

// Flush flushes the underlying stream. The cursor is not moved.
func (h *SharedHandle) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.s.Flush()
}

// Invalidate discards the tracked cursor position, forcing the next operation
// to re-seek. Call it after operating on the underlying stream directly,
// outside the handle.
func (h *SharedHandle) Invalidate() {
	h.mu.Lock()
	h.known = false
	h.mu.Unlock()
}

// Unwrap returns the underlying stream. Direct use of the returned stream
// must be followed by Invalidate.
func (h *SharedHandle) Unwrap() Stream {
	return h.s
}

// seekTo positions the underlying cursor at absolute offset off.
// Caller must hold h.mu.
func (h *SharedHandle) seekTo(off int64) error {
	if !h.always && h.known && h.pos == off {
		return nil
	}
	if _, err := h.s.Seek(off, io.SeekStart); err != nil {
		h.known = false
		return err
	}
	h.pos = off
	h.known = true
	return nil
}

// settle advances the tracked position by n, or discards it when the
// underlying operation failed in a way that leaves the cursor unknown.
// Caller must hold h.mu.
func (h *SharedHandle) settle(n int64, ok bool) {
	if !ok {
		h.known = false
		return
	}
	h.pos += n
}
