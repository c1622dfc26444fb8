package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	trainingout "skidlogg/internal/modules/training/port/out"
)

// FileBlobWatcher signals when the blob file changes on disk. It watches the
// parent directory because a write replaces the file by rename.
type FileBlobWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	changes  chan struct{}
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

func NewFileBlobWatcher(path string, debounce time.Duration) (trainingout.ChangeWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &FileBlobWatcher{
		path:     path,
		watcher:  watcher,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		cancel:   cancel,
	}
	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

func (w *FileBlobWatcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher and closes the Changes channel. Later calls
// return the first result.
func (w *FileBlobWatcher) Close() error {
	w.closeOnce.Do(func() {
		w.cancel()
		w.wg.Wait()
		close(w.changes)
		w.closeErr = w.watcher.Close()
	})
	return w.closeErr
}

func (w *FileBlobWatcher) loop(ctx context.Context) {
	defer w.wg.Done()
	base := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("blob watcher error")
		}
	}
}
