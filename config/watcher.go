package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the freshly loaded settings after the watched
// file changes.
type ReloadFunc func(Config)

// Watcher reloads a configuration file when it is written and fans the
// result out to registered callbacks. Reloads that fail to parse are
// dropped, so subscribers only ever see complete configurations. A
// panicking callback is isolated; it cannot stop the watcher or the
// other callbacks.
type Watcher struct {
	mu       sync.Mutex
	path     string
	fsw      *fsnotify.Watcher
	onReload []ReloadFunc
	done     chan struct{}
	wg       sync.WaitGroup
	closed   bool
}

// Watch starts watching the configuration file at path. The file's
// directory is watched rather than the file itself, since editors that
// replace files on save would otherwise silently detach the watch.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path: abs,
		fsw:  fsw,
		done: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// OnReload registers a callback invoked after every successful reload.
func (w *Watcher) OnReload(fn ReloadFunc) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	w.onReload = append(w.onReload, fn)
	w.mu.Unlock()
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		return
	}
	w.mu.Lock()
	fns := make([]ReloadFunc, len(w.onReload))
	copy(fns, w.onReload)
	w.mu.Unlock()

	for _, fn := range fns {
		w.notify(fn, cfg)
	}
}

func (w *Watcher) notify(fn ReloadFunc, cfg Config) {
	defer func() {
		_ = recover()
	}()
	fn(cfg)
}
