package streamkit_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/gobeaver/streamkit"
	"github.com/gobeaver/streamkit/driver/memory"
)

func TestReadOnlyStream(t *testing.T) {
	buf := memory.NewBytes(sequence(20))
	ro := streamkit.NewReadOnlyStream(buf)

	// Read operations work normally.
	got, err := io.ReadAll(ro)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, sequence(20)) {
		t.Errorf("ReadAll() = %v, want the full stream", got)
	}

	if pos, err := ro.Seek(5, io.SeekStart); err != nil || pos != 5 {
		t.Errorf("Seek() = (%d, %v), want (5, nil)", pos, err)
	}
	if err := ro.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}

	// Write operations return ErrReadOnly and touch nothing.
	n, err := ro.Write([]byte("XX"))
	if n != 0 || !streamkit.IsReadOnlyError(err) {
		t.Errorf("Write() = (%d, %v), want (0, ErrReadOnly)", n, err)
	}
	if !bytes.Equal(buf.Bytes(), sequence(20)) {
		t.Error("Write() on a read-only stream modified the underlying data")
	}

	if !ro.IsReadOnly() {
		t.Error("IsReadOnly() = false, want true")
	}
	if ro.Unwrap() != streamkit.Stream(buf) {
		t.Error("Unwrap() did not return the wrapped stream")
	}
}

func TestReadOnlyStreamSize(t *testing.T) {
	buf := memory.NewBytes(sequence(20))
	ro := streamkit.NewReadOnlyStream(buf)

	size, err := ro.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 20 {
		t.Errorf("Size() = %d, want 20", size)
	}
}

func TestWindowOverReadOnlyStream(t *testing.T) {
	// A window composes with the decorator: reads stay windowed, writes stay
	// rejected.
	buf := memory.NewBytes(sequence(20))
	w, err := streamkit.New(streamkit.NewReadOnlyStream(buf), 5, streamkit.WithLength(10))
	if err != nil {
		t.Fatal(err)
	}

	got, err := io.ReadAll(w)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, sequence(20)[5:15]) {
		t.Errorf("ReadAll() = %v, want bytes [5,15)", got)
	}

	if _, err := w.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("X")); !streamkit.IsReadOnlyError(err) {
		t.Errorf("Write() error = %v, want ErrReadOnly", err)
	}
}
