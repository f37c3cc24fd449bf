package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-parsley/pkg/model"
)

// WatchOption configures a Live store.
type WatchOption func(*Live)

// WithLogger sets the logger used to report reloads. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) WatchOption {
	return func(l *Live) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDebounce coalesces bursts of file events into one reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(l *Live) {
		if d >= 0 {
			l.debounce = d
		}
	}
}

// WithOnReload registers a callback invoked with every successfully reloaded
// store.
func WithOnReload(fn func(*Store)) WatchOption {
	return func(l *Live) {
		l.onReload = fn
	}
}

// Live serves metadata from a directory and swaps in a fresh store whenever
// the directory changes. A reload that fails to parse keeps the previous store.
type Live struct {
	dir      string
	current  atomic.Pointer[Store]
	logger   *slog.Logger
	debounce time.Duration
	onReload func(*Store)
}

var _ model.Decorator = (*Live)(nil)

// NewLive loads dir once and returns a Live store ready to Watch.
func NewLive(dir string, options ...WatchOption) (*Live, error) {
	l := &Live{dir: dir, logger: slog.Default(), debounce: 100 * time.Millisecond}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	store, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	l.current.Store(store)
	return l, nil
}

// Store returns the current snapshot.
func (l *Live) Store() *Store {
	return l.current.Load()
}

// Decorate implements model.Decorator against the current snapshot.
func (l *Live) Decorate(form *model.Form) error {
	return NewDecorator(l.Store()).Decorate(form)
}

// Reload re-reads the directory and swaps the snapshot on success.
func (l *Live) Reload() error {
	store, err := LoadFS(os.DirFS(l.dir))
	if err != nil {
		return err
	}
	l.current.Store(store)
	if l.onReload != nil {
		l.onReload(store)
	}
	return nil
}

// Watch blocks, reloading on file events under the directory, until ctx is
// cancelled.
func (l *Live) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("metadata: create watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()
	if err := w.Add(l.dir); err != nil {
		return fmt.Errorf("metadata: watch %s: %w", l.dir, err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if formatOf(ev.Name) == "" {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(l.debounce)
			} else {
				timer.Reset(l.debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := l.Reload(); err != nil {
				l.logger.Warn("metadata reload failed", slog.String("dir", l.dir), slog.String("err", err.Error()))
				continue
			}
			l.logger.Info("metadata reloaded", slog.String("dir", l.dir), slog.Int("forms", len(l.Store().Forms())))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.logger.Debug("metadata watcher error", slog.String("err", err.Error()))
		}
	}
}
