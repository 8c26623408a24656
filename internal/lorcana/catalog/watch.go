package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog when the external dataset file changes on
// disk. Write events are debounced because editors and downloaders often
// emit several events per save.
type Watcher struct {
	service  *Service
	path     string
	logger   *slog.Logger
	onReload func()

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher for the dataset at path. onReload is invoked
// after every successful reload; it may be nil.
func NewWatcher(service *Service, path string, logger *slog.Logger, onReload func()) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the parent directory: many tools replace files via rename, which
	// drops a watch placed on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Warn("close watcher after add failure", "error", closeErr)
		}
		return nil, fmt.Errorf("watch dataset directory: %w", err)
	}

	w := &Watcher{
		service:  service,
		path:     path,
		logger:   logger,
		onReload: onReload,
		watcher:  fw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

const reloadDebounce = 500 * time.Millisecond

func (w *Watcher) run() {
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if err := w.service.LoadFile(w.path); err != nil {
				w.logger.Warn("dataset reload failed, keeping previous catalog", "error", err)
				continue
			}
			w.logger.Info("catalog reloaded from dataset change", "path", w.path)
			if w.onReload != nil {
				w.onReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
