package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MrSimonC/SharpAlignment/pkg/config"
	"github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/formatter"
	"github.com/MrSimonC/SharpAlignment/pkg/logger"
	"github.com/MrSimonC/SharpAlignment/pkg/utils"
	"github.com/MrSimonC/SharpAlignment/pkg/version"
)

const (
	UseDescription   = "sharpalign [flags] [PATH]"
	ShortDescription = "SharpAlignment - sorts using directives and type members in C# files"
	LongDescription  = `sharpalign reorders the using directives and type members of C# source files.

Using directives are ordered global first, then static, then plain before
alias directives, and finally by name. Members are grouped by kind (fields,
constructors, properties, methods, nested types and so on), then by access,
then by modifier, and optionally by name. Comments stay attached to the
declaration they precede.

PATH can be a single .cs file or a directory. A directory is processed
recursively, skipping bin and obj folders. Without PATH the source is read
from standard input and the result written to standard output.

With --dry-run nothing is written: changed files are listed and the exit
code is 1 when any file would change.`
)

type options struct {
	noSortByAlphabet bool
	caseSensitive    bool
	dryRun           bool
	systemUsingFirst bool
	exclude          []string
	configPath       string
	preferredPrefix  string
	concurrency      int
	logLevel         string
	stats            bool
	watch            bool
	showVersion      bool
}

// NewRootCmd builds the sharpalign command. info is printed by --version.
func NewRootCmd(info version.Info) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   UseDescription,
		Short: ShortDescription,
		Long:  LongDescription,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, info)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.noSortByAlphabet, "no-sort-members-by-alphabet", false, "Do not sort members of the same kind, access and modifier by name")
	flags.BoolVar(&opts.caseSensitive, "sort-members-by-alphabet-case-sensitive", false, "Compare member names case-sensitively")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Report files that would change instead of writing them")
	flags.BoolVar(&opts.systemUsingFirst, "system-using-first", false, "Place using directives with the preferred prefix before the others")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "File or directory to skip (repeatable); a trailing separator marks a directory")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: nearest "+config.FileName+" above PATH)")
	flags.StringVar(&opts.preferredPrefix, "preferred-prefix", "", "Prefix used by --system-using-first (default \"System\")")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "Files processed in parallel in directory mode, 0 for one per CPU")
	flags.StringVar(&opts.logLevel, "log-level", logger.DefaultLevel, "Diagnostics level: trace, debug, info, warn or error")
	flags.BoolVar(&opts.stats, "stats", false, "Print a summary table to stderr")
	flags.BoolVar(&opts.watch, "watch", false, "Keep running and reprocess files when they change")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options, info version.Info) error {
	if opts.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return nil
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}

	cfg, err := loadConfig(cmd, opts, input)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.Path != "" {
		log.Debugf(errors.InfoMsgConfigFile, cfg.Path)
	}

	if input == "" && (opts.watch || isTerminal(cmd.InOrStdin())) {
		return errors.ErrMissingInput
	}

	reorgOpts, err := cfg.Options()
	if err != nil {
		return err
	}

	f := formatter.New(formatter.FormatterConfig{
		Input:       input,
		DryRun:      opts.dryRun,
		Exclude:     cfg.Exclude,
		Concurrency: cfg.Concurrency,
		Stats:       opts.stats,
		Options:     reorgOpts,
		Stdin:       cmd.InOrStdin(),
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Logger:      log,
	})

	if opts.watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return f.Watch(ctx)
	}
	return f.Run(cmd.Context())
}

// loadConfig reads the config file and applies the flags that were set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command, opts *options, input string) (*config.Config, error) {
	path := opts.configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
		}
	} else {
		start := input
		if start == "" {
			start = "."
		}
		path = utils.FindConfigFile(start, config.FileName)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("no-sort-members-by-alphabet") {
		cfg.SortMembersByAlphabet = !opts.noSortByAlphabet
	}
	if flags.Changed("sort-members-by-alphabet-case-sensitive") {
		cfg.SortMembersByAlphabetCaseSensitive = opts.caseSensitive
	}
	if flags.Changed("system-using-first") {
		cfg.SystemUsingFirst = opts.systemUsingFirst
	}
	if flags.Changed("preferred-prefix") {
		cfg.PreferredPrefix = opts.preferredPrefix
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = opts.concurrency
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	cfg.Exclude = append(cfg.Exclude, opts.exclude...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute runs the root command.
func Execute(info version.Info) error {
	return NewRootCmd(info).ExecuteContext(context.Background())
}
