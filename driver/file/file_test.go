package file

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gobeaver/streamkit"
)

func newTestFile(t *testing.T, content []byte) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stream.dat")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	f, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFileReadWriteSeek(t *testing.T) {
	f := newTestFile(t, []byte("0123456789"))

	if pos, err := f.Seek(4, io.SeekStart); err != nil || pos != 4 {
		t.Fatalf("Seek() = (%d, %v), want (4, nil)", pos, err)
	}
	if _, err := f.Write([]byte("XY")); err != nil {
		t.Fatal(err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "0123XY6789" {
		t.Errorf("file contents = %q, want %q", got, "0123XY6789")
	}
}

func TestFileSize(t *testing.T) {
	f := newTestFile(t, []byte("0123456789"))
	size, err := f.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 10 {
		t.Errorf("Size() = %d, want 10", size)
	}
}

func TestFileCreatesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.dat")
	f, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file was not created: %v", err)
	}
	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
}

func TestFileWindows(t *testing.T) {
	// The file driver composes with shared windows the same way the memory
	// driver does.
	original := make([]byte, 100)
	for i := range original {
		original[i] = byte(i)
	}
	f := newTestFile(t, original)

	h := streamkit.NewSharedHandle(f)
	a, err := streamkit.NewShared(h, 10, streamkit.WithLength(30))
	if err != nil {
		t.Fatal(err)
	}
	b, err := streamkit.NewShared(h, 40, streamkit.WithLength(60))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Write(bytes.Repeat([]byte("X"), 30)); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 60)
	if _, err := io.ReadFull(b, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, original[40:]) {
		t.Error("write through one window disturbed what the other reads")
	}
}

func TestFileWatch(t *testing.T) {
	f := newTestFile(t, []byte("grow me"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token, err := f.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if !token.ActiveChangeCallbacks() {
		t.Error("ActiveChangeCallbacks() = false, want true")
	}

	fired := make(chan struct{})
	unregister := token.RegisterChangeCallback(func() { close(fired) })
	defer unregister()

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(" please")); err != nil {
		t.Fatal(err)
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("change token did not fire after the file was written")
	}
	if !token.HasChanged() {
		t.Error("HasChanged() = false after the token fired")
	}
}
