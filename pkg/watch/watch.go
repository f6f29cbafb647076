// Package watch reports batches of changed files under a directory tree.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period that closes a batch of events.
const DefaultDebounce = 250 * time.Millisecond

// Options filters the watched tree.
type Options struct {
	Debounce time.Duration
	// SkipDir reports directories that must not be watched. The root is
	// always watched.
	SkipDir func(path string) bool
	// Accept reports files whose changes are passed to onChange.
	Accept func(path string) bool
}

// Run watches target (a directory, or the directory of a file) until ctx is
// done or the watcher fails. onChange receives the sorted, de-duplicated
// paths that changed during each debounce window.
func Run(ctx context.Context, target string, opts Options, onChange func(paths []string)) error {
	root, err := watchRoot(target)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root, opts.SkipDir); err != nil {
		return err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			path := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
					if opts.SkipDir == nil || !opts.SkipDir(path) {
						_ = addRecursive(watcher, path, opts.SkipDir)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 || !Relevant(path, opts) {
				continue
			}

			if len(pending) > 0 && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			pending[path] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(changed)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

// Relevant reports whether a change to path should be reported: it must pass
// Accept and must not be an editor scratch file.
func Relevant(path string, opts Options) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".#") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	return opts.Accept == nil || opts.Accept(path)
}

func watchRoot(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

func addRecursive(watcher *fsnotify.Watcher, root string, skip func(string) bool) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || (skip != nil && skip(path))) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
