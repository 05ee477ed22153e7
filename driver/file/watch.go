package file

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/gobeaver/streamkit"
)

// Watch implements streamkit.CanWatch. The returned token signals once, when
// the underlying file is next written, created, renamed or removed - for
// example when another process appends to a shared container file. Pairs
// with unbounded windows built with streamkit.WithLiveEnd, whose next
// from-end seek observes the new length.
//
// Cancel the context to release the watcher if the token is no longer
// needed; after the token fires the watcher is released automatically.
func (f *File) Watch(ctx context.Context) (streamkit.ChangeToken, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(f.path); err != nil {
		w.Close()
		return nil, err
	}

	token := streamkit.NewCallbackChangeToken()
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					token.SignalChange()
					return
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
				// Transient watcher errors are not changes; keep waiting.
			}
		}
	}()
	return token, nil
}
