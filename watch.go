package gesturekit

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file when it changes on disk. Successful
// reloads arrive on Updates, load or watch failures on Errors. Both channels
// are closed after Close.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	Updates chan Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchConfig starts watching path. The parent directory is watched so that
// editors which replace the file on save are followed.
func WatchConfig(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		Updates: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer func() {
		close(w.Updates)
		close(w.Errors)
		close(w.done)
	}()

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			cfg, err := LoadConfig(w.path)
			if err != nil {
				w.sendError(err)
				continue
			}
			w.sendUpdate(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

// sendUpdate replaces an unread update so the reader only sees the latest.
func (w *ConfigWatcher) sendUpdate(cfg Config) {
	select {
	case <-w.Updates:
	default:
	}
	w.Updates <- cfg
}

func (w *ConfigWatcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
