// Package logger writes leveled diagnostics for sharpalign runs.
//
// Diagnostics go to standard error so that standard output only carries the
// report lines and reorganized console output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// DefaultLevel is used for empty or unknown level names.
const DefaultLevel = "warn"

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer. It is
// safe for concurrent use.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger. A nil writer discards everything.
// Colors are used only when writing to a terminal on os.Stdout or os.Stderr.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
		now:         time.Now,
	}
}

// Discard returns a logger that drops every message.
func Discard() *ConsoleLogger {
	return NewConsoleLogger(nil, DefaultLevel)
}

func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelNames[normalized]; ok {
		return normalized
	}
	return DefaultLevel
}

// Level returns the configured minimum level.
func (cl *ConsoleLogger) Level() string {
	return cl.logLevel
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return levelNames[messageLevel] >= levelNames[cl.logLevel]
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.logWithLevel("TRACE", format, args...)
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logWithLevel("DEBUG", format, args...)
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logWithLevel("INFO", format, args...)
}

// Warnf logs at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logWithLevel("WARN", format, args...)
}

// Errorf logs at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logWithLevel("ERROR", format, args...)
}

func (cl *ConsoleLogger) logWithLevel(level, format string, args ...any) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	message := fmt.Sprintf(format, args...)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "INFO":
		return color.New(color.FgBlue)
	case "WARN":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
