package file

import (
	"os"
	"path/filepath"

	"github.com/gobeaver/streamkit"
)

// File provides a local-file implementation of streamkit.Stream backed by an
// *os.File. Flush maps to fsync, so a flushed window's bytes are durable as
// far as the operating system allows.
type File struct {
	f    *os.File
	path string
}

// New opens (creating if necessary) path for reading and writing.
func New(path string) (*File, error) {
	return open(path, os.O_RDWR|os.O_CREATE)
}

// Open opens path read-only. Writes fail with a permission error from the
// operating system; wrap with streamkit.NewReadOnlyStream for a typed error.
func Open(path string) (*File, error) {
	return open(path, os.O_RDONLY)
}

func open(path string, flag int) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(abs, flag, 0644)
	if err != nil {
		return nil, err
	}
	return &File{f: f, path: abs}, nil
}

// Path returns the absolute path of the underlying file.
func (f *File) Path() string {
	return f.path
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	return f.f.Read(p)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	return f.f.Write(p)
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.f.Seek(offset, whence)
}

// Flush implements streamkit.Flusher by syncing the file to stable storage.
func (f *File) Flush() error {
	return f.f.Sync()
}

// Size implements streamkit.CanSize.
func (f *File) Size() (int64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Close closes the underlying file. Windows over a closed file fail with the
// operating system's closed-file error.
func (f *File) Close() error {
	return f.f.Close()
}

// Ensure File implements the stream interfaces
var (
	_ streamkit.Stream   = (*File)(nil)
	_ streamkit.CanSize  = (*File)(nil)
	_ streamkit.CanWatch = (*File)(nil)
)
