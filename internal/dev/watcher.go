package dev

import (
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches directories and turns write/create events into
// reload broadcasts.
type Watcher struct {
	log *slog.Logger
	fs  *fsnotify.Watcher
	bc  *Broadcaster

	done chan struct{}
}

// NewWatcher creates a watcher feeding the given broadcaster.
func NewWatcher(bc *Broadcaster, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		log:  log,
		fs:   fsw,
		bc:   bc,
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add starts watching a directory.
func (w *Watcher) Add(dir string) error {
	return w.fs.Add(dir)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if isTransient(ev.Name) {
				continue
			}
			w.log.Debug("file changed", "file", ev.Name)
			w.bc.Broadcast(ReloadMessage{Kind: ReloadFull, File: ev.Name})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "err", err)
		}
	}
}

// isTransient filters editor noise: backup and hidden files.
func isTransient(name string) bool {
	base := name
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		base = name[i+1:]
	}
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp")
}
