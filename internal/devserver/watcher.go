package devserver

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watcher wraps fsnotify with recursive directory registration. fsnotify
// watches single directories, so every subdirectory is added up front and
// newly created ones are added as their create events arrive.
type watcher struct {
	inner  *fsnotify.Watcher
	events chan string
	log    *slog.Logger
}

func newWatcher(roots []string, log *slog.Logger) (*watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		inner:  inner,
		events: make(chan string, 16),
		log:    log,
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if err := w.addRecursive(root); err != nil {
			inner.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

func (w *watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.inner.Add(path)
	})
}

func (w *watcher) loop() {
	for {
		select {
		case ev, ok := <-w.inner.Events:
			if !ok {
				close(w.events)
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(ev.Name); err != nil {
						w.log.Warn("could not watch new dir", "dir", ev.Name, "error", err)
					}
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				select {
				case w.events <- ev.Name:
				default:
				}
			}
		case err, ok := <-w.inner.Errors:
			if !ok {
				close(w.events)
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *watcher) close() {
	w.inner.Close()
}
