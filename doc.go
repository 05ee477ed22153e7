// Package streamkit provides windowed sub-stream views over random-access
// streams, letting a contiguous byte range inside a larger stream be used as
// an independent stream with its own zero-based coordinate space.
//
// The typical use case is container formats (tar, zip, archive-with-trailer
// layouts) where many logical sub-files are packed back-to-back inside one
// physical stream and downstream code wants to read, write, and seek each
// sub-file without knowing its absolute offset or being able to wander
// outside its bounds.
//
// # Core Concepts
//
// A [Window] is a bounded or unbounded view over an underlying [Stream]. It
// translates relative positions into absolute ones, clamps reads and writes
// to its bound, and itself satisfies [Stream], so it is substitutable
// anywhere a plain stream is expected:
//
//	buf := memory.NewBytes(archiveData)
//	w, err := streamkit.New(buf, 512, streamkit.WithLength(1024))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := io.ReadAll(w) // at most 1024 bytes, from offset 512
//
// A [SharedHandle] lets multiple windows share one underlying stream. The
// underlying cursor is process-wide state, so the handle serializes
// operations and re-seeks to each window's absolute position before
// delegating:
//
//	h := streamkit.NewSharedHandle(f)
//	header, _ := streamkit.NewShared(h, 0, streamkit.WithLength(512))
//	body, _ := streamkit.NewShared(h, 512, streamkit.WithLength(4096))
//
// # Segment Tables
//
// A [Table] maps names to byte ranges of one shared stream, so callers that
// already know a container's layout can open sub-files by name:
//
//	t := streamkit.NewTable(f)
//	_ = t.Add(streamkit.Segment{Name: "header.bin", Start: 0, Length: 512})
//	_ = t.Add(streamkit.Segment{Name: "body.dat", Start: 512, Length: 4096})
//
//	w, err := t.Open("body.dat")
//	matches, err := t.List("*.dat")
//
// # Storage Drivers
//
// Two reference stream implementations ship with the module:
//
//   - In-memory (github.com/gobeaver/streamkit/driver/memory)
//   - Local file (github.com/gobeaver/streamkit/driver/file)
//
// Any other type satisfying [Stream] works the same way. Drivers may expose
// optional capabilities; check with a type assertion:
//
//	if sizer, ok := s.(streamkit.CanSize); ok {
//	    n, err := sizer.Size()
//	}
//
// # Error Handling
//
// StreamKit provides sentinel errors and helper functions for error handling:
//
//	_, err := w.Seek(-1, io.SeekCurrent)
//	if streamkit.IsInvalidOffset(err) {
//	    // Seek target was before the window start
//	}
//
//	var offErr *streamkit.OffsetError
//	if errors.As(err, &offErr) {
//	    fmt.Printf("Operation: %s, Offset: %d\n", offErr.Op, offErr.Offset)
//	}
//
// Errors returned by the underlying stream propagate unchanged so callers
// keep full diagnostic detail.
//
// # Configuration
//
// StreamKit can be configured via environment variables with the STREAMKIT_
// prefix, or programmatically via the [Config] struct:
//
//	cfg := streamkit.Config{
//	    CursorSync: "always",
//	    EndProbe:   "live",
//	}
//	w, err := streamkit.New(s, 0, cfg.WindowOptions()...)
package streamkit
