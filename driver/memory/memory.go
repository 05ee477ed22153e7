package memory

import (
	"io"
	"sync"

	"github.com/gobeaver/streamkit"
)

// Buffer provides an in-memory implementation of streamkit.Stream.
// Useful for testing and for assembling container payloads before they are
// written out.
//
// The buffer grows when written past its current end; seeking past the end
// and then writing zero-fills the gap, matching sparse-file semantics.
// A Buffer is safe for concurrent use, though callers sharing one buffer
// between windows should go through a streamkit.SharedHandle so the cursor
// is positioned correctly per window.
type Buffer struct {
	mu      sync.Mutex
	data    []byte
	pos     int64
	maxSize int64 // Maximum total size (0 = unlimited)
}

// Config holds configuration for the memory buffer
type Config struct {
	// MaxSize is the maximum total size in bytes (0 = unlimited)
	MaxSize int64
}

// New creates a new empty in-memory stream
func New(cfg ...Config) *Buffer {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}
	return &Buffer{maxSize: maxSize}
}

// NewBytes creates an in-memory stream seeded with a copy of b, positioned
// at offset 0.
func NewBytes(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data}
}

// Read implements io.Reader. Reading at or past the end returns io.EOF.
func (b *Buffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write implements io.Writer. Writing past the end grows the buffer; a seek
// past the end followed by a write zero-fills the gap. When a MaxSize is set,
// the portion that fits is written and io.ErrShortWrite is returned for the
// rest; a write with no room at all fails with streamkit.ErrInvalidSize.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(p) == 0 {
		return 0, nil
	}

	q := p
	if b.maxSize > 0 {
		if b.pos >= b.maxSize {
			return 0, &streamkit.OffsetError{Op: "write", Offset: b.pos, Err: streamkit.ErrInvalidSize}
		}
		if room := b.maxSize - b.pos; int64(len(q)) > room {
			q = q[:room]
		}
	}

	// Zero-fill any gap left by a seek past the end.
	if gap := b.pos - int64(len(b.data)); gap > 0 {
		b.data = append(b.data, make([]byte, gap)...)
	}

	n := copy(b.data[b.pos:], q)
	if n < len(q) {
		b.data = append(b.data, q[n:]...)
		n = len(q)
	}
	b.pos += int64(n)

	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Seek implements io.Seeker. Seeking past the end is permitted; seeking
// before the start fails with streamkit.ErrInvalidOffset.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = b.pos + offset
	case io.SeekEnd:
		target = int64(len(b.data)) + offset
	default:
		return 0, &streamkit.OffsetError{Op: "seek", Offset: offset, Err: streamkit.ErrInvalidWhence}
	}
	if target < 0 {
		return 0, &streamkit.OffsetError{Op: "seek", Offset: target, Err: streamkit.ErrInvalidOffset}
	}
	b.pos = target
	return target, nil
}

// Flush implements streamkit.Flusher. Memory writes are immediate, so this
// is a no-op.
func (b *Buffer) Flush() error {
	return nil
}

// Size implements streamkit.CanSize.
func (b *Buffer) Size() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int64(len(b.data)), nil
}

// Bytes returns a copy of the buffer's current contents.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Len returns the buffer's current size in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Ensure Buffer implements the stream interfaces
var (
	_ streamkit.Stream  = (*Buffer)(nil)
	_ streamkit.CanSize = (*Buffer)(nil)
)
