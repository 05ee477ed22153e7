package streamkit

import (
	"io"
	"math"
)

// Window is a bounded or unbounded view over a contiguous byte range of an
// underlying stream, with its own zero-based coordinate space. It satisfies
// Stream, so it is substitutable anywhere a plain stream is expected.
//
// A bounded window never exposes bytes past its bound: reads are clamped and
// report io.EOF at the bound, writes are clamped and report io.ErrShortWrite
// when the bound cuts them short. The bound is a hard ceiling, not an
// auto-extending buffer. Unbounded windows end wherever the underlying
// stream ends.
//
// Construction performs no seek and no validation against the actual stream;
// a window over a range the stream does not have fails on first use, not at
// construction.
//
// A Window is not safe for concurrent use by multiple goroutines. Multiple
// windows over one underlying stream are safe when they share a
// SharedHandle (see NewShared).
type Window struct {
	h       *SharedHandle
	start   int64
	length  int64
	bounded bool
	pos     int64

	liveEnd bool
	endRel  int64 // cached relative end, unbounded windows only
	endOK   bool
}

type windowOptions struct {
	length     int64
	bounded    bool
	liveEnd    bool
	alwaysSeek bool
}

// WindowOption is a functional option for configuring a Window.
type WindowOption func(*windowOptions)

// WithLength bounds the window to length bytes. Without it the window is
// open-ended and extends to the underlying stream's end.
func WithLength(length int64) WindowOption {
	return func(o *windowOptions) {
		o.length = length
		o.bounded = true
	}
}

// WithLiveEnd makes an unbounded window re-probe the underlying stream's end
// on every from-end seek, so a growing stream is observed. The default caches
// the end discovered by the first from-end seek. Bounded windows are
// unaffected; their end is the bound.
func WithLiveEnd() WindowOption {
	return func(o *windowOptions) {
		o.liveEnd = true
	}
}

// WithAlwaysSeek makes the window's private handle seek the underlying stream
// before every operation (see WithHandleAlwaysSeek). Only meaningful with
// New; windows built over an existing handle with NewShared follow that
// handle's policy.
func WithAlwaysSeek() WindowOption {
	return func(o *windowOptions) {
		o.alwaysSeek = true
	}
}

// New creates a window over s starting at absolute offset start. The stream
// is wrapped in a private SharedHandle; use NewShared to build several
// windows over one stream.
func New(s Stream, start int64, opts ...WindowOption) (*Window, error) {
	o, err := buildWindowOptions(start, opts)
	if err != nil {
		return nil, err
	}
	var hopts []HandleOption
	if o.alwaysSeek {
		hopts = append(hopts, WithHandleAlwaysSeek())
	}
	return newWindow(NewSharedHandle(s, hopts...), start, o), nil
}

// NewShared creates a window over the stream held by h, starting at absolute
// offset start. Any number of windows may share one handle; the handle
// serializes their operations and re-positions the shared cursor for each.
func NewShared(h *SharedHandle, start int64, opts ...WindowOption) (*Window, error) {
	o, err := buildWindowOptions(start, opts)
	if err != nil {
		return nil, err
	}
	return newWindow(h, start, o), nil
}

func buildWindowOptions(start int64, opts []WindowOption) (*windowOptions, error) {
	if start < 0 {
		return nil, &OffsetError{Op: "window", Offset: start, Err: ErrInvalidOffset}
	}
	o := &windowOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.bounded {
		if o.length < 0 {
			return nil, &OffsetError{Op: "window", Offset: o.length, Err: ErrInvalidSize}
		}
		if start > math.MaxInt64-o.length {
			return nil, &OffsetError{Op: "window", Offset: start, Err: ErrOffsetOverflow}
		}
	}
	return o, nil
}

func newWindow(h *SharedHandle, start int64, o *windowOptions) *Window {
	return &Window{
		h:       h,
		start:   start,
		length:  o.length,
		bounded: o.bounded,
		liveEnd: o.liveEnd,
	}
}

// Read reads up to len(p) bytes starting at the window's current position,
// advancing the position by the number of bytes read. A bounded window clamps
// the request to the bytes remaining before the bound and reports io.EOF at
// the bound even if the underlying stream has more data there. Partial reads
// are a normal outcome. The position is unchanged when the read fails.
func (w *Window) Read(p []byte) (int, error) {
	if w.bounded {
		remaining := w.length - w.pos
		if remaining <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	if len(p) == 0 {
		return 0, nil
	}
	abs, err := w.abs("read")
	if err != nil {
		return 0, err
	}
	n, err := w.h.ReadAt(p, abs)
	w.pos += int64(n)
	return n, err
}

// Write writes up to len(p) bytes starting at the window's current position,
// advancing the position by the number of bytes written. A bounded window
// clamps the write to the capacity remaining before the bound; bytes beyond
// the clamp are not written, and the short count is reported with
// io.ErrShortWrite. A write at or past the bound writes nothing. Unbounded
// windows forward the full write. The position is unchanged when the write
// fails.
func (w *Window) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	q := p
	if w.bounded {
		remaining := w.length - w.pos
		if remaining < 0 {
			remaining = 0
		}
		if int64(len(q)) > remaining {
			q = q[:remaining]
		}
		if len(q) == 0 {
			return 0, io.ErrShortWrite
		}
	}
	abs, err := w.abs("write")
	if err != nil {
		return 0, err
	}
	n, err := w.h.WriteAt(q, abs)
	w.pos += int64(n)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Seek sets the window's position, interpreted in the window's own coordinate
// space per io.SeekStart, io.SeekCurrent and io.SeekEnd, and returns the new
// relative position. For a bounded window the end is the bound; an unbounded
// window discovers the underlying stream's end (cached after the first probe
// unless WithLiveEnd is set).
//
// A target before the window start fails with ErrInvalidOffset. A target past
// the bound is permitted; subsequent reads report io.EOF and bounded writes
// io.ErrShortWrite. The underlying stream is not seeked until the next read
// or write. The position is unchanged when the seek fails.
func (w *Window) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		t, err := addOffsets("seek", w.pos, offset)
		if err != nil {
			return 0, err
		}
		target = t
	case io.SeekEnd:
		end, err := w.end()
		if err != nil {
			return 0, err
		}
		t, err := addOffsets("seek", end, offset)
		if err != nil {
			return 0, err
		}
		target = t
	default:
		return 0, &OffsetError{Op: "seek", Offset: offset, Err: ErrInvalidWhence}
	}
	if target < 0 {
		return 0, &OffsetError{Op: "seek", Offset: target, Err: ErrInvalidOffset}
	}
	w.pos = target
	return target, nil
}

// Flush flushes the underlying stream. No windowing semantics apply.
func (w *Window) Flush() error {
	return w.h.Flush()
}

// Start returns the window's absolute start offset in the underlying stream.
func (w *Window) Start() int64 {
	return w.start
}

// Position returns the window's current relative position.
func (w *Window) Position() int64 {
	return w.pos
}

// Len returns the window's length and whether it is bounded.
func (w *Window) Len() (int64, bool) {
	return w.length, w.bounded
}

// Handle returns the shared handle the window operates through.
func (w *Window) Handle() *SharedHandle {
	return w.h
}

// end returns the window's relative end position.
func (w *Window) end() (int64, error) {
	if w.bounded {
		return w.length, nil
	}
	if w.endOK && !w.liveEnd {
		return w.endRel, nil
	}
	absEnd, err := w.h.End()
	if err != nil {
		return 0, err
	}
	rel := absEnd - w.start
	if rel < 0 {
		// The stream ends before the window even starts.
		return 0, &OffsetError{Op: "seek", Offset: rel, Err: ErrInvalidOffset}
	}
	w.endRel = rel
	w.endOK = true
	return rel, nil
}

// abs returns start+pos, guarding against address-space overflow.
func (w *Window) abs(op string) (int64, error) {
	if w.start > math.MaxInt64-w.pos {
		return 0, &OffsetError{Op: op, Offset: w.pos, Err: ErrOffsetOverflow}
	}
	return w.start + w.pos, nil
}

// addOffsets adds a signed delta to a non-negative base with overflow checks.
func addOffsets(op string, base, delta int64) (int64, error) {
	if delta > 0 && base > math.MaxInt64-delta {
		return 0, &OffsetError{Op: op, Offset: base, Err: ErrOffsetOverflow}
	}
	if delta < 0 && base < math.MinInt64-delta {
		return 0, &OffsetError{Op: op, Offset: base, Err: ErrOffsetOverflow}
	}
	return base + delta, nil
}

// Ensure Window implements the stream interfaces
var (
	_ Stream      = (*Window)(nil)
	_ ReadStream  = (*Window)(nil)
	_ WriteStream = (*Window)(nil)
)
