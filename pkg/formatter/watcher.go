package formatter

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/filelock"
	"github.com/MrSimonC/SharpAlignment/pkg/utils"
	"github.com/MrSimonC/SharpAlignment/pkg/watch"
)

// Watch runs the configured input once and then reprocesses files as they
// change until ctx is done. Console input cannot be watched.
func (f *Formatter) Watch(ctx context.Context) error {
	mode, err := ResolveMode(f.config.Input)
	if err != nil {
		return err
	}
	if mode == ModeConsole {
		return errors.ErrMissingInput
	}

	if err := f.Run(ctx); err != nil && !goerrors.Is(err, errors.ErrChangesFound) {
		return err
	}

	target, err := filepath.Abs(f.config.Input)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolvePath, err)
	}
	root := target
	if mode == ModeFile {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToGetWorkingDir, err)
		}
		root = cwd
	}

	excluded, err := NewExclusions(f.config.Exclude, root)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolvePath, err)
	}

	opts := watch.Options{
		SkipDir: func(path string) bool {
			return utils.IsBuildOutputDir(filepath.Base(path)) || excluded.Match(path)
		},
		Accept: func(path string) bool {
			if mode == ModeFile {
				return pathsEqual(path, target) && !excluded.Match(path)
			}
			return utils.IsSourceFile(path) && !utils.InBuildOutput(root, path) && !excluded.Match(path)
		},
	}

	f.config.Logger.Infof(errors.InfoMsgWatching, target)
	err = watch.Run(ctx, target, opts, func(paths []string) {
		f.ProcessChanged(paths)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToStartWatcher, err)
	}
	return nil
}

// ProcessChanged reprocesses paths reported by the watcher. Failures are
// logged and do not stop the remaining paths. A file locked by another
// process is skipped; its rewrite triggers the next batch anyway. In a dry
// run changed paths are reported instead of written.
func (f *Formatter) ProcessChanged(paths []string) {
	var results []fileResult
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		r, err := f.processFile(path)
		if err != nil {
			f.config.Logger.Errorf("%v", err)
			continue
		}
		results = append(results, r)
	}
	f.renderStats(results)

	for _, r := range results {
		switch {
		case !r.stats.Changed:
			f.config.Logger.Debugf(errors.InfoMsgUnchanged, r.path)
		case f.config.DryRun:
			f.report(r.path)
		default:
			written, err := filelock.TryLockAndWrite(r.path, r.output)
			switch {
			case err != nil:
				f.config.Logger.Errorf("%s: %s: %v", r.path, errors.ErrMsgFailedToWriteFile, err)
			case !written:
				f.config.Logger.Warnf(errors.WarnMsgBusy, r.path)
			default:
				f.config.Logger.Infof(errors.InfoMsgProcessed, r.path)
			}
		}
	}
}
