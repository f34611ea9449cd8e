package watch

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one store file and re-runs an action when it changes.
// Editors and export hooks replace files rather than writing in place, so
// the parent directory is watched and events are filtered by name.
type Watcher struct {
	path         string
	onChange     func() error
	debounceTime time.Duration
	watcher      *fsnotify.Watcher
}

// New creates a watcher for path. onChange runs after changes settle.
func New(path string, onChange func() error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		path:         abs,
		onChange:     onChange,
		debounceTime: 500 * time.Millisecond,
		watcher:      fw,
	}, nil
}

// Run blocks until ctx is cancelled, invoking onChange after a burst of
// events on the watched file settles.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounceTime, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)

		case <-fire:
			if err := w.onChange(); err != nil {
				log.Printf("re-export failed: %v", err)
			}
		}
	}
}
