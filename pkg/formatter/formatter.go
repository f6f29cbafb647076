// Package formatter runs the reorganizer over standard input, a single file
// or a directory tree, and either rewrites the files or reports which ones
// would change.
package formatter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/MrSimonC/SharpAlignment/pkg/codec"
	"github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/filelock"
	"github.com/MrSimonC/SharpAlignment/pkg/logger"
	"github.com/MrSimonC/SharpAlignment/pkg/reorganizer"
	"github.com/MrSimonC/SharpAlignment/pkg/utils"
)

// Mode is the input/output mode of a run.
type Mode int

const (
	ModeConsole Mode = iota
	ModeFile
	ModeDirectory
)

func (m Mode) String() string {
	switch m {
	case ModeConsole:
		return "console"
	case ModeFile:
		return "file"
	case ModeDirectory:
		return "directory"
	}
	return "unknown"
}

// Logger receives diagnostics. *logger.ConsoleLogger implements it.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type FormatterConfig struct {
	Input       string   // file or directory; empty reads standard input
	DryRun      bool     // report changes instead of writing them
	Exclude     []string // raw exclusion entries
	Concurrency int      // directory workers, 0 means one per CPU
	Stats       bool     // print a summary table to Stderr
	Options     reorganizer.Options

	Stdin  io.Reader
	Stdout io.Writer // report lines and console output only
	Stderr io.Writer
	Logger Logger
}

// Formatter applies one configuration to its input.
type Formatter struct {
	config FormatterConfig
	reorg  *reorganizer.Reorganizer
}

// New creates a Formatter. Nil streams default to the process streams and a
// nil Logger discards diagnostics.
func New(config FormatterConfig) *Formatter {
	if config.Stdin == nil {
		config.Stdin = os.Stdin
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if config.Logger == nil {
		config.Logger = logger.Discard()
	}
	return &Formatter{
		config: config,
		reorg:  reorganizer.New(config.Options),
	}
}

// ResolveMode decides how input is processed. A path that does not exist is
// reported as errors.ErrInputNotFound.
func ResolveMode(input string) (Mode, error) {
	if input == "" {
		return ModeConsole, nil
	}
	isDir, err := utils.IsDirectory(input)
	if os.IsNotExist(err) {
		return ModeConsole, fmt.Errorf("%w: %s", errors.ErrInputNotFound, input)
	}
	if err != nil {
		return ModeConsole, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}
	if isDir {
		return ModeDirectory, nil
	}
	return ModeFile, nil
}

// Run processes the configured input once. It returns
// errors.ErrChangesFound when a dry run found files that would change.
func (f *Formatter) Run(ctx context.Context) error {
	mode, err := ResolveMode(f.config.Input)
	if err != nil {
		return err
	}

	switch mode {
	case ModeDirectory:
		return f.ProcessDirectory(ctx, f.config.Input)
	case ModeFile:
		return f.ProcessFile(f.config.Input)
	default:
		return f.ProcessConsole()
	}
}

type fileResult struct {
	path   string
	output []byte
	stats  FileStats
}

// reorganizeBytes decodes data, reorganizes it and encodes it back with the
// same encoding. When nothing moved, data itself is returned.
func (f *Formatter) reorganizeBytes(data []byte) ([]byte, reorganizer.Result, error) {
	text, enc, err := codec.Decode(data)
	if err != nil {
		return nil, reorganizer.Result{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToDecodeFile, err)
	}

	out, res, err := f.reorg.ReorganizeText(text)
	if err != nil {
		return nil, res, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReorganizeFile, err)
	}
	if !res.Changed() {
		return data, res, nil
	}

	encoded, err := codec.Encode(out, enc)
	if err != nil {
		return nil, res, fmt.Errorf("%s: %w", errors.ErrMsgFailedToEncodeFile, err)
	}
	return encoded, res, nil
}

func (f *Formatter) processFile(path string) (fileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	out, res, err := f.reorganizeBytes(data)
	if err != nil {
		return fileResult{}, fmt.Errorf("%s: %w", path, err)
	}

	changed := !bytes.Equal(data, out)
	f.config.Logger.Tracef(errors.TraceMsgReorganized, path, res.MovedDirectives, res.MovedMembers, res.CleanedScopes)
	if res.SkippedScopes > 0 {
		f.config.Logger.Warnf(errors.WarnMsgSkipped, res.SkippedScopes, path)
	}
	return fileResult{
		path:   path,
		output: out,
		stats: FileStats{
			Path:            path,
			MovedDirectives: res.MovedDirectives,
			MovedMembers:    res.MovedMembers,
			SkippedScopes:   res.SkippedScopes,
			Changed:         changed,
		},
	}, nil
}

func (f *Formatter) write(r fileResult) error {
	if err := filelock.LockAndWrite(r.path, r.output); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	f.config.Logger.Infof(errors.InfoMsgProcessed, r.path)
	return nil
}

func (f *Formatter) report(line string) {
	fmt.Fprintln(f.config.Stdout, line)
}

func (f *Formatter) renderStats(results []fileResult) {
	if !f.config.Stats {
		return
	}
	stats := make([]FileStats, 0, len(results))
	for _, r := range results {
		stats = append(stats, r.stats)
	}
	RenderStats(f.config.Stderr, stats)
}

// ProcessConsole reorganizes standard input onto standard output. Dry run
// has no effect in this mode.
func (f *Formatter) ProcessConsole() error {
	data, err := io.ReadAll(f.config.Stdin)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadStdin, err)
	}

	out, res, err := f.reorganizeBytes(data)
	if err != nil {
		return err
	}
	if _, err := f.config.Stdout.Write(out); err != nil {
		return err
	}

	f.renderStats([]fileResult{{stats: FileStats{
		Path:            "<stdin>",
		MovedDirectives: res.MovedDirectives,
		MovedMembers:    res.MovedMembers,
		SkippedScopes:   res.SkippedScopes,
		Changed:         res.Changed(),
	}}})
	return nil
}

// ProcessFile reorganizes one file. Exclusions are resolved against the
// working directory.
func (f *Formatter) ProcessFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolvePath, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToGetWorkingDir, err)
	}
	excluded, err := NewExclusions(f.config.Exclude, cwd)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolvePath, err)
	}

	if excluded.Match(abs) {
		f.config.Logger.Infof(errors.InfoMsgExcluded, abs)
		if f.config.DryRun {
			f.report(errors.ReportNoChanges)
		}
		return nil
	}

	r, err := f.processFile(abs)
	if err != nil {
		return err
	}
	f.renderStats([]fileResult{r})

	if f.config.DryRun {
		if !r.stats.Changed {
			f.report(errors.ReportNoChanges)
			return nil
		}
		f.report(abs)
		return errors.ErrChangesFound
	}

	if !r.stats.Changed {
		f.config.Logger.Debugf(errors.InfoMsgUnchanged, abs)
		return nil
	}
	return f.write(r)
}

// FindFiles lists the C# files under root that survive the build output and
// exclusion filters, sorted by path.
func FindFiles(root string, excluded Exclusions) ([]string, error) {
	files, err := utils.FindSourceFiles(root, func(path string, _ bool) bool {
		return excluded.Match(path)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindFiles, err)
	}
	sort.Strings(files)
	return files, nil
}

// ProcessDirectory reorganizes every C# file under dir. Exclusions are
// resolved against dir. Files are processed concurrently; the first failure
// stops scheduling new files, and nothing is written unless every file was
// processed. Reports and writes follow path order.
func (f *Formatter) ProcessDirectory(ctx context.Context, dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolvePath, err)
	}
	excluded, err := NewExclusions(f.config.Exclude, root)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToResolvePath, err)
	}

	files, err := FindFiles(root, excluded)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		f.config.Logger.Infof(errors.InfoMsgNoFiles, root)
	} else {
		f.config.Logger.Infof(errors.InfoMsgFoundFiles, len(files), root)
	}

	results, err := f.processAll(ctx, files)
	if err != nil {
		return err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })
	f.renderStats(results)

	if f.config.DryRun {
		changed := 0
		for _, r := range results {
			if r.stats.Changed {
				f.report(r.path)
				changed++
			}
		}
		if changed == 0 {
			f.report(errors.ReportAllFilesOK)
			return nil
		}
		return errors.ErrChangesFound
	}

	for _, r := range results {
		if !r.stats.Changed {
			f.config.Logger.Debugf(errors.InfoMsgUnchanged, r.path)
			continue
		}
		if err := f.write(r); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) concurrency() int {
	if f.config.Concurrency > 0 {
		return f.config.Concurrency
	}
	return runtime.NumCPU()
}

func (f *Formatter) processAll(ctx context.Context, files []string) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency())
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := f.processFile(path)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
