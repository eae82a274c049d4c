package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	onChange  func(*Config)
	log       *zap.Logger
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Watch starts watching path and calls onChange with each successfully
// reloaded config. onChange runs on the watcher goroutine. Invalid files are
// logged and skipped, keeping the previous settings in effect.
//
// The parent directory is watched so editors that replace the file by rename
// are still picked up.
func Watch(path string, log *zap.Logger, onChange func(*Config)) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:      filepath.Clean(path),
		fsWatcher: fsWatcher,
		onChange:  onChange,
		log:       log,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.log.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.log.Info("config reloaded", zap.String("path", w.path))
			w.onChange(cfg)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))

		case <-w.stop:
			return
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		err = w.fsWatcher.Close()
		<-w.done
	})
	return err
}
