// Package logging provides structured, colorful logging for the acadeploy
// tools, giving the acactl CLI and the docapi service the same log format.
//
// Both binaries log through the package-level functions below instead of
// holding logger instances. Output from third-party code (gin's request log,
// the az CLI's stderr stream, the standard library logger) is routed through
// LevelWriter so that every line carries the same timestamp and level styling.
//
// LOGGING FEATURES:
//   - Color-coded levels: DEBUG (purple), INFO (blue), WARN (yellow), ERROR (red), SUCCESS (green)
//   - Unix conventions: INFO/SUCCESS to stdout, WARN/ERROR/DEBUG to stderr
//   - Log files: a single file replaces both streams when configured
//   - CLI quiet mode: SuppressOutput keeps only errors visible
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	stdlog "log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	// Logger for INFO/SUCCESS messages (stdout by default)
	stdoutLogger = newLogger(os.Stdout)

	// Logger for WARN/ERROR/DEBUG messages (stderr by default)
	stderrLogger = newLogger(os.Stderr)

	// Track if logging has been explicitly configured by CLI tools
	cliConfigured = false

	// Current stdout destination, used by Success to respect redirection
	currentStdoutOutput io.Writer = os.Stdout

	// Single log file mode (overrides stdout/stderr separation)
	usingLogFile  = false
	logFileHandle io.Writer
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(setupCustomStyles())
	return l
}

var levelColors = map[log.Level]struct {
	label string
	color string
}{
	log.DebugLevel: {"DEBUG", "#7F6DFF"},
	log.InfoLevel:  {"INFO", "#42E7FF"},
	log.WarnLevel:  {"WARN", "#FFE763"},
	log.ErrorLevel: {"ERROR", "#FF4473"},
}

// successStyles relabels INFO as a green SUCCESS.
var successStyles = func() *log.Styles {
	styles := setupCustomStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))
	return styles
}()

// setupCustomStyles applies levelColors on top of the default styles.
func setupCustomStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, c := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(c.label).
			Foreground(lipgloss.Color(c.color))
	}
	return styles
}

func getStdoutLoggerOutput() io.Writer {
	if usingLogFile {
		return logFileHandle
	}
	return currentStdoutOutput
}

// Info logs informational messages to stdout (or the log file).
func Info(format string, v ...any) {
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs warnings to stderr (or the log file).
func Warn(format string, v ...any) {
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs errors to stderr (or the log file).
func Error(format string, v ...any) {
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs debugging detail to stderr (or the log file).
func Debug(format string, v ...any) {
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// Success logs a completed operation in green. It is an INFO-level message
// with a SUCCESS label, so it is filtered exactly like Info.
func Success(format string, v ...any) {
	if stdoutLogger.GetLevel() > log.InfoLevel {
		return
	}
	l := newLogger(getStdoutLoggerOutput())
	l.SetStyles(successStyles)
	l.Info(fmt.Sprintf(format, v...))
}

// SetLevel sets the minimum level for both loggers. Unknown levels fall back
// to INFO; callers validate user input with ValidateLogLevel first.
func SetLevel(level string) {
	logLevel, err := log.ParseLevel(level)
	if err != nil || logLevel > log.ErrorLevel {
		logLevel = log.InfoLevel
	}
	stdoutLogger.SetLevel(logLevel)
	stderrLogger.SetLevel(logLevel)
}

// SetOutput sends all logs to w. A nil writer suppresses all output.
func SetOutput(w io.Writer) {
	if w == nil {
		stdoutLogger.SetLevel(log.FatalLevel + 1)
		stderrLogger.SetLevel(log.FatalLevel + 1)
		usingLogFile = false
		return
	}

	level := stdoutLogger.GetLevel()
	usingLogFile = true
	logFileHandle = w

	stdoutLogger = newLogger(w)
	stderrLogger = newLogger(w)
	stdoutLogger.SetLevel(level)
	stderrLogger.SetLevel(level)
}

// SuppressOutput keeps only ERROR logs visible. Used by acactl so that
// command output is not interleaved with progress logs.
func SuppressOutput() {
	stdoutLogger.SetLevel(log.ErrorLevel)
	stderrLogger.SetLevel(log.ErrorLevel)
	cliConfigured = true
}

// RestoreOutput returns to Unix stream conventions at INFO level.
func RestoreOutput() {
	usingLogFile = false

	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	stdoutLogger.SetLevel(log.InfoLevel)
	stderrLogger.SetLevel(log.InfoLevel)

	currentStdoutOutput = os.Stdout
	cliConfigured = true
}

// IsConfiguredByCLI returns true if logging has been explicitly configured by CLI tools.
func IsConfiguredByCLI() bool {
	return cliConfigured
}

// LevelWriter forwards each written line to a fixed log level with an
// optional prefix. Used for gin's writers and the az CLI's stderr.
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates a writer that logs each line at level with prefix.
// Valid levels: DEBUG, INFO, WARN, ERROR
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write splits p into lines and logs each non-empty one.
func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = "(" + w.prefix + ") " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "WARN":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}

// RedirectStandardLog points the standard library logger at w.
// Passing nil discards standard log output.
func RedirectStandardLog(w io.Writer) {
	if w == nil {
		stdlog.SetOutput(io.Discard)
		return
	}
	stdlog.SetOutput(w)
}
