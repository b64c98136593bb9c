package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stamp-build/stamp/pkg/log"
)

const defaultCacheSize = 512

type Config struct {
	// Dirs are the source directories watched recursively.
	Dirs []string
	// Quiet is how long the tree must be still before OnChange fires,
	// coalescing editor save bursts into one rebuild.
	Quiet time.Duration
	// CacheSize bounds the content digest cache.
	CacheSize int
	// OnChange runs after each quiet period with at least one content
	// change. Its error is logged, never fatal: watching continues.
	OnChange func(context.Context) error
}

func (c *Config) validate() error {
	if len(c.Dirs) == 0 {
		return errors.New("at least one directory is required")
	}

	if c.Quiet <= 0 {
		c.Quiet = 300 * time.Millisecond
	}

	if c.CacheSize < 1 {
		c.CacheSize = defaultCacheSize
	}

	if c.OnChange == nil {
		return errors.New("onChange is required")
	}

	return nil
}

// Watcher re-runs a build whenever watched source files change content.
type Watcher struct {
	fsw      *fsnotify.Watcher
	digests  *digestCache
	quiet    time.Duration
	onChange func(context.Context) error
}

func New(c Config) (*Watcher, error) {
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid watch config: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating fsnotify watcher: %w", err)
	}

	digests, err := newDigestCache(c.CacheSize)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("error creating digest cache: %w", err)
	}

	w := Watcher{
		fsw:      fsw,
		digests:  digests,
		quiet:    c.Quiet,
		onChange: c.OnChange,
	}

	for _, dir := range c.Dirs {
		if err := w.watchTree(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return &w, nil
}

// watchTree registers dir and every directory below it. fsnotify
// watches are not recursive.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("error watching %s: %w", path, err)
		}
		return nil
	})
}

// Watch blocks until ctx is done, dispatching rebuilds after each
// quiet period that saw a content change.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer = time.NewTimer(w.quiet)
		dirty bool
	)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			dirty = true
			// Drain a stale tick before rearming, otherwise a fired
			// timer makes the rebuild land before the quiet period.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.quiet)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn(ctx, "watch error", err)

		case <-timer.C:
			if !dirty {
				continue
			}
			dirty = false
			if err := w.onChange(ctx); err != nil {
				log.Error(ctx, "rebuild failed", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// New subdirectories need their own watch.
			if err := w.watchTree(event.Name); err != nil {
				log.Warn(context.Background(), "error watching new directory", err, "path", event.Name)
			}
			return true
		}
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		return true
	}

	return w.digests.Changed(event.Name)
}
