package editor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the draft source from a file whenever an external editor
// writes it. Events are drained with Poll from the render thread, so all
// panel mutation stays on the single logical thread driving the frame loop.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// NewWatcher watches path for writes. The parent directory is watched rather
// than the file itself: editors that save via rename replace the inode, which
// silences a file-level watch.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{watcher: fsw, path: path}, nil
}

// Poll drains pending filesystem events without blocking and returns the new
// draft contents when the watched file changed since the last call.
func (w *Watcher) Poll() (contents string, changed bool) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return contents, changed
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			data, err := os.ReadFile(w.path)
			if err != nil {
				log.Printf("Reload %s: %v", w.path, err)
				continue
			}
			contents, changed = string(data), true
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return contents, changed
			}
			log.Printf("Watcher error: %v", err)
		default:
			return contents, changed
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
