package streamkit

import (
	"errors"
	"io"
	"testing"
)

// fakeStream is a minimal in-memory stream for exercising the handle's
// cursor bookkeeping. It counts operations so tests can assert how often the
// cursor was actually moved.
type fakeStream struct {
	data     []byte
	pos      int64
	seeks    int
	writeErr error
}

func newFakeStream(n int) *fakeStream {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return &fakeStream{data: data}
}

func (f *fakeStream) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *fakeStream) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		// A failed write may still have moved the cursor arbitrarily.
		f.pos += 1
		return 0, f.writeErr
	}
	for f.pos > int64(len(f.data)) {
		f.data = append(f.data, 0)
	}
	n := copy(f.data[f.pos:], p)
	if n < len(p) {
		f.data = append(f.data, p[n:]...)
		n = len(p)
	}
	f.pos += int64(n)
	return n, nil
}

func (f *fakeStream) Seek(offset int64, whence int) (int64, error) {
	f.seeks++
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.pos + offset
	case io.SeekEnd:
		target = int64(len(f.data)) + offset
	default:
		return 0, &OffsetError{Op: "seek", Offset: offset, Err: ErrInvalidWhence}
	}
	if target < 0 {
		return 0, &OffsetError{Op: "seek", Offset: target, Err: ErrInvalidOffset}
	}
	f.pos = target
	return target, nil
}

func (f *fakeStream) Flush() error { return nil }

// sizedStream adds CanSize on top of fakeStream.
type sizedStream struct {
	*fakeStream
}

func (s *sizedStream) Size() (int64, error) {
	return int64(len(s.data)), nil
}

func TestSharedHandleLazySeek(t *testing.T) {
	fs := newFakeStream(32)
	h := NewSharedHandle(fs)

	p := make([]byte, 4)
	if _, err := h.ReadAt(p, 0); err != nil {
		t.Fatal(err)
	}
	if fs.seeks != 1 {
		t.Fatalf("first ReadAt performed %d seeks, want 1", fs.seeks)
	}

	// Contiguous: the tracked cursor already sits at offset 4.
	if _, err := h.ReadAt(p, 4); err != nil {
		t.Fatal(err)
	}
	if fs.seeks != 1 {
		t.Errorf("contiguous ReadAt performed %d total seeks, want 1", fs.seeks)
	}

	// Non-contiguous: the cursor must move.
	if _, err := h.ReadAt(p, 20); err != nil {
		t.Fatal(err)
	}
	if fs.seeks != 2 {
		t.Errorf("jump ReadAt performed %d total seeks, want 2", fs.seeks)
	}
}

func TestSharedHandleAlwaysSeek(t *testing.T) {
	fs := newFakeStream(32)
	h := NewSharedHandle(fs, WithHandleAlwaysSeek())

	p := make([]byte, 4)
	for i := 0; i < 3; i++ {
		if _, err := h.ReadAt(p, int64(i*4)); err != nil {
			t.Fatal(err)
		}
	}
	if fs.seeks != 3 {
		t.Errorf("always-seek handle performed %d seeks for 3 reads, want 3", fs.seeks)
	}
}

func TestSharedHandleInvalidate(t *testing.T) {
	fs := newFakeStream(32)
	h := NewSharedHandle(fs)

	p := make([]byte, 4)
	if _, err := h.ReadAt(p, 0); err != nil {
		t.Fatal(err)
	}

	// External code moves the real cursor behind the handle's back.
	if _, err := fs.Seek(17, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	h.Invalidate()

	if _, err := h.ReadAt(p, 4); err != nil {
		t.Fatal(err)
	}
	if p[0] != 4 {
		t.Errorf("read byte %d after Invalidate, want 4", p[0])
	}
}

func TestSharedHandleWriteAt(t *testing.T) {
	fs := newFakeStream(16)
	h := NewSharedHandle(fs)

	if n, err := h.WriteAt([]byte{9, 9}, 6); n != 2 || err != nil {
		t.Fatalf("WriteAt() = (%d, %v), want (2, nil)", n, err)
	}
	if fs.data[6] != 9 || fs.data[7] != 9 {
		t.Errorf("bytes at [6,8) = %v, want [9 9]", fs.data[6:8])
	}
	if fs.data[5] != 5 || fs.data[8] != 8 {
		t.Errorf("neighboring bytes were modified: %v", fs.data[4:10])
	}

	// The tracked cursor now sits at 8; a read there needs no seek.
	before := fs.seeks
	p := make([]byte, 2)
	if _, err := h.ReadAt(p, 8); err != nil {
		t.Fatal(err)
	}
	if fs.seeks != before {
		t.Errorf("read after contiguous write performed %d extra seeks, want 0", fs.seeks-before)
	}
}

func TestSharedHandleErrorDiscardsTracking(t *testing.T) {
	fs := newFakeStream(16)
	h := NewSharedHandle(fs)

	p := make([]byte, 4)
	if _, err := h.ReadAt(p, 0); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("disk on fire")
	fs.writeErr = boom
	if _, err := h.WriteAt([]byte{1}, 4); !errors.Is(err, boom) {
		t.Fatalf("WriteAt() error = %v, want the underlying error", err)
	}
	fs.writeErr = nil

	// After a failed write the cursor cannot be trusted; the next operation
	// must re-seek and still read the right bytes.
	before := fs.seeks
	if _, err := h.ReadAt(p, 4); err != nil {
		t.Fatal(err)
	}
	if fs.seeks != before+1 {
		t.Errorf("read after failed write performed %d extra seeks, want 1", fs.seeks-before)
	}
	if p[0] != 4 {
		t.Errorf("read byte %d, want 4", p[0])
	}
}

func TestSharedHandleEnd(t *testing.T) {
	t.Run("probe via seek", func(t *testing.T) {
		fs := newFakeStream(24)
		h := NewSharedHandle(fs)

		end, err := h.End()
		if err != nil {
			t.Fatal(err)
		}
		if end != 24 {
			t.Errorf("End() = %d, want 24", end)
		}
		if fs.seeks != 1 {
			t.Errorf("End() performed %d seeks, want 1", fs.seeks)
		}
	})

	t.Run("CanSize fast path", func(t *testing.T) {
		fs := newFakeStream(24)
		h := NewSharedHandle(&sizedStream{fs})

		end, err := h.End()
		if err != nil {
			t.Fatal(err)
		}
		if end != 24 {
			t.Errorf("End() = %d, want 24", end)
		}
		if fs.seeks != 0 {
			t.Errorf("End() moved the cursor %d times despite CanSize, want 0", fs.seeks)
		}
	})
}

func TestSharedHandleUnwrap(t *testing.T) {
	fs := newFakeStream(8)
	h := NewSharedHandle(fs)
	if h.Unwrap() != Stream(fs) {
		t.Error("Unwrap() did not return the wrapped stream")
	}
}
