// Package watch observes tracked files and reports change batches once the
// filesystem has quiesced, so a burst of editor writes triggers one backup
// instead of dozens.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"confsync/src/errdefs"
)

// DefaultDebounce is the quiet period required before a batch is reported.
const DefaultDebounce = 2 * time.Second

// Options configure a Watcher.
type Options struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
}

// Handler receives the aliases whose files changed, sorted and deduplicated.
type Handler func(aliases []string)

// Watcher wraps an fsnotify watcher over the parent directories of the
// tracked files. Editors typically save by renaming a temp file over the
// original, which silently detaches a watch on the file itself, so the
// directories are watched and events are filtered by exact path.
type Watcher struct {
	fsw      *fsnotify.Watcher
	byPath   map[string]string // tracked path -> alias
	debounce time.Duration
}

// New builds a watcher for files, a map of alias to absolute path.
func New(files map[string]string, opts Options) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errdefs.NotFound("no tracked files to watch")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errdefs.IO(err, "start watcher")
	}
	w := &Watcher{
		fsw:      fsw,
		byPath:   make(map[string]string, len(files)),
		debounce: opts.Debounce,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	dirs := map[string]bool{}
	for alias, path := range files {
		clean := filepath.Clean(path)
		w.byPath[clean] = alias
		dirs[filepath.Dir(clean)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errdefs.IO(err, "watch %s", dir)
		}
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run blocks, invoking handler with a batch of changed aliases each time the
// debounce window closes. It returns nil once ctx is cancelled, flushing any
// pending batch first.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	dirty := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(dirty) == 0 {
			return
		}
		aliases := make([]string, 0, len(dirty))
		for alias := range dirty {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		handler(aliases)
		dirty = map[string]bool{}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			alias, tracked := w.byPath[filepath.Clean(event.Name)]
			if !tracked {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			dirty[alias] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return errdefs.IO(err, "watch events")
		case <-timerC:
			flush()
		}
	}
}
