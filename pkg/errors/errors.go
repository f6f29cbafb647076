package errors

import "errors"

// Sentinel errors shared across packages. Callers match them with errors.Is.
var (
	// ErrChangesFound reports that a dry run found files that would change.
	ErrChangesFound = errors.New("changes found")
	// ErrUnexpectedRoot reports a tree whose root is not a compilation unit.
	ErrUnexpectedRoot = errors.New("tree root is not a compilation unit")
	// ErrMissingInput reports that no input path was given and stdin is a terminal.
	ErrMissingInput = errors.New("no input: pass a file or directory, or redirect standard input")
	// ErrInputNotFound reports an input path that does not exist.
	ErrInputNotFound = errors.New("input path does not exist")
)

// Error message constants for the sharpalign application
const (
	// File processing errors
	ErrMsgFailedToReadFile       = "failed to read file"
	ErrMsgFailedToDecodeFile     = "failed to decode file"
	ErrMsgFailedToReorganizeFile = "failed to reorganize file"
	ErrMsgFailedToEncodeFile     = "failed to encode file"
	ErrMsgFailedToWriteFile      = "failed to write file"
	ErrMsgFailedToReadStdin      = "failed to read standard input"

	// Directory processing errors
	ErrMsgFailedToCheckPath     = "failed to check path"
	ErrMsgFailedToFindFiles     = "failed to find C# files in directory"
	ErrMsgFailedToResolvePath   = "failed to resolve path"
	ErrMsgFailedToGetWorkingDir = "failed to get current working directory"

	// Configuration errors
	ErrMsgFailedToLoadConfig   = "failed to load config"
	ErrMsgInvalidMemberOrder   = "invalid member_order"
	ErrMsgInvalidLogLevel      = "invalid log level"
	ErrMsgFailedToStartWatcher = "failed to start watcher"

	// Report lines written to standard output
	ReportNoChanges  = "no changes"
	ReportAllFilesOK = "all files ok"
)

// Diagnostic messages written through the stderr logger
const (
	TraceMsgReorganized = "Reorganized %s: %d directive(s) and %d member(s) moved, %d list(s) re-padded"
	InfoMsgFoundFiles   = "Found %d C# files in directory: %s"
	InfoMsgNoFiles      = "No C# files found in directory: %s"
	InfoMsgProcessed    = "Processed: %s"
	InfoMsgUnchanged    = "Unchanged: %s"
	InfoMsgExcluded     = "Excluded: %s"
	InfoMsgConfigFile   = "Using config file: %s"
	InfoMsgWatching     = "Watching %s for changes"
	WarnMsgSkipped      = "Skipped %d list(s) with preprocessor directives in %s"
	WarnMsgBusy         = "Skipped %s: locked by another process"
)
