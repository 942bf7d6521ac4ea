package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce drops repeated events for one file; editors tend to write
// a file several times per save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reports prefab and script files that changed on disk. Events
// carries the path of each changed file and is drained by the game loop.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchDir watches dir and its scripts subdirectory when present.
func WatchDir(dir string) (*Watcher, error) {
	dirs := []string{dir}
	if info, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(dir, "scripts"))
	}
	return NewWatcher(dirs...)
}

// NewWatcher watches each of dirs (not recursively).
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil || w.watcher == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			now := time.Now()
			if now.Sub(last[event.Name]) < reloadDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Errors are dropped while the buffer is full.
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// relevant reports whether event changed the content of a prefab or script.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return IsSpecFile(event.Name) || IsScriptFile(event.Name)
}

// IsSpecFile reports whether path is a YAML prefab.
func IsSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsScriptFile reports whether path is a tengo script.
func IsScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
