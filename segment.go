package streamkit

import (
	"math"
	"sort"
	"sync"

	"github.com/gobwas/glob"
)

// Segment names a contiguous byte range of an underlying stream. StreamKit
// knows nothing about container formats; callers that have parsed a layout
// (a tar index, a zip central directory, an entry table) register the ranges
// they found.
type Segment struct {
	Name   string
	Start  int64
	Length int64
}

// Table maps segment names to byte ranges of one shared stream, so sub-files
// of a container can be opened by name. All windows a table hands out share
// one SharedHandle. A Table is safe for concurrent use.
//
// The table imposes no disjointness constraint: segments may overlap, and
// correctness of overlapping use is the caller's responsibility.
type Table struct {
	mu       sync.RWMutex
	h        *SharedHandle
	segments map[string]Segment
	opts     []WindowOption
}

// NewTable creates a segment table over s. The stream is wrapped in a
// SharedHandle shared by every window the table opens. Any window options
// given are applied to each opened window (WithLength is set per segment and
// must not be passed here).
func NewTable(s Stream, opts ...WindowOption) *Table {
	return NewSharedTable(NewSharedHandle(s), opts...)
}

// NewSharedTable creates a segment table over an existing shared handle.
func NewSharedTable(h *SharedHandle, opts ...WindowOption) *Table {
	return &Table{
		h:        h,
		segments: make(map[string]Segment),
		opts:     opts,
	}
}

// Add registers a segment. The name must be non-empty and unused; the range
// must be non-negative and representable.
func (t *Table) Add(seg Segment) error {
	if seg.Name == "" {
		return &SegmentError{Op: "add", Name: seg.Name, Err: ErrNotSupported}
	}
	if seg.Start < 0 {
		return &SegmentError{Op: "add", Name: seg.Name, Err: ErrInvalidOffset}
	}
	if seg.Length < 0 {
		return &SegmentError{Op: "add", Name: seg.Name, Err: ErrInvalidSize}
	}
	if seg.Start > math.MaxInt64-seg.Length {
		return &SegmentError{Op: "add", Name: seg.Name, Err: ErrOffsetOverflow}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.segments[seg.Name]; exists {
		return &SegmentError{Op: "add", Name: seg.Name, Err: ErrExist}
	}
	t.segments[seg.Name] = seg
	return nil
}

// Remove unregisters a segment. Windows already opened on it keep working.
func (t *Table) Remove(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.segments[name]; !exists {
		return &SegmentError{Op: "remove", Name: name, Err: ErrNotExist}
	}
	delete(t.segments, name)
	return nil
}

// Lookup returns the named segment.
func (t *Table) Lookup(name string) (Segment, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	seg, ok := t.segments[name]
	return seg, ok
}

// Open returns a bounded window over the named segment, sharing the table's
// handle with every other open window.
func (t *Table) Open(name string) (*Window, error) {
	t.mu.RLock()
	seg, ok := t.segments[name]
	t.mu.RUnlock()
	if !ok {
		return nil, &SegmentError{Op: "open", Name: name, Err: ErrNotExist}
	}

	opts := make([]WindowOption, 0, len(t.opts)+1)
	opts = append(opts, t.opts...)
	opts = append(opts, WithLength(seg.Length))
	return NewShared(t.h, seg.Start, opts...)
}

// List returns the segments whose names match the glob pattern, ordered by
// name. Patterns follow github.com/gobwas/glob syntax: "*.dat", "entries/*".
func (t *Table) List(pattern string) ([]Segment, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	var matches []Segment
	for name, seg := range t.segments {
		if g.Match(name) {
			matches = append(matches, seg)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	return matches, nil
}

// Len returns the number of registered segments.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.segments)
}

// Handle returns the shared handle every window opened by the table uses.
func (t *Table) Handle() *SharedHandle {
	return t.h
}
