package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phanxgames/drops"
)

// debounce drops repeat events for one file that arrive closer than this.
const debounce = 100 * time.Millisecond

// Watcher reports writes to a single YAML config file. Editors often replace
// files instead of writing them, so the parent directory is watched and
// events are filtered by name.
type Watcher struct {
	Events chan string
	Errors chan error

	watcher *fsnotify.Watcher
	path    string
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	if !isConfigFile(path) {
		return nil, fmt.Errorf("watch %s: not a yaml file", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	watcher := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		watcher: w,
		path:    abs,
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
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
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < debounce {
				continue
			}
			last = now
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Watch reloads the config at path on every write and hands the result to
// fn until ctx is done. Parse failures are passed to fn with the previous
// config left in place by the caller.
func Watch(ctx context.Context, path string, fn func(drops.Config, error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-w.Events:
			if !ok {
				return nil
			}
			cfg, err := Load(p)
			drops.Logger().Info("config reloaded", "path", p, "err", err)
			fn(cfg, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
