package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reloading
const DefaultDebounce = 500 * time.Millisecond

// LexiconWatcher reloads the service lexicon when its file changes
type LexiconWatcher struct {
	service  *Service
	path     string
	debounce time.Duration
	logger   *logging.Logger

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// onReload is called after each reload attempt; used by tests
	onReload func(error)
}

// NewLexiconWatcher creates a watcher for path
func NewLexiconWatcher(svc *Service, path string, debounce time.Duration) *LexiconWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &LexiconWatcher{
		service:  svc,
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   svc.logger.With("component", "lexicon-watcher"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins watching. The directory is watched rather than the file so
// editors that save by renaming a temporary file are noticed.
func (w *LexiconWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	w.watcher = watcher
	w.logger.Info("Started watching lexicon", "path", w.path)

	go w.watchLoop(ctx)

	return nil
}

// watchLoop handles file system events
func (w *LexiconWatcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping lexicon watcher (context cancelled)")
			return

		case <-w.stopCh:
			w.logger.Info("Stopping lexicon watcher (stop signal)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: restart the timer on every change
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info("Lexicon file changed, reloading", "path", w.path)
			err := w.service.ReloadLexicon(w.path)
			if w.onReload != nil {
				w.onReload(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and waits for its goroutine to exit
func (w *LexiconWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	if w.watcher != nil {
		<-w.done
	}
}
