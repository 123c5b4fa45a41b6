// Package logger is the process-wide run log: every record goes to the log
// file, Info and above are echoed to the console.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// consolePrefix is prepended to console lines per level
var consolePrefix = [...]string{"[DEBUG] ", "", "⚠️  ", "❌ "}

// String returns the tag written to the log file
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelTags[l]
}

type runLog struct {
	console  *log.Logger
	file     *log.Logger
	logFile  *os.File
	minLevel Level
}

var (
	current  *runLog
	warnings atomic.Int64
)

// Init opens the run log at logFilePath and resets the warning counter.
// Debug records reach the console only when verbose is set.
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	current = &runLog{
		console:  log.New(consoleOutput, "", 0),
		file:     log.New(logFile, "", log.LstdFlags),
		logFile:  logFile,
		minLevel: minLevel,
	}
	warnings.Store(0)
	return nil
}

// Close closes the log file and detaches the run log
func Close() {
	if current != nil {
		current.logFile.Close()
	}
	current = nil
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	write(LevelDebug, format, args...)
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	write(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file) and counts it
func Warn(format string, args ...interface{}) {
	warnings.Add(1)
	write(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	write(LevelError, format, args...)
}

// write falls back to stdout before Init so library code can log from tests
func write(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if current == nil {
		if level > LevelDebug {
			fmt.Printf("%s%s\n", fallbackPrefix(level), message)
		}
		return
	}

	current.file.Printf("[%s] %s", level, message)
	if level >= current.minLevel {
		current.console.Printf("%s%s", consolePrefix[level], message)
	}
}

func fallbackPrefix(level Level) string {
	if level == LevelInfo {
		return ""
	}
	return level.String() + ": "
}

// Skip records that a channel was dropped for a tier.
// The file gets the full error chain; the console only gets a one-line summary.
func Skip(tier, channel string, err error) {
	if current == nil {
		fmt.Printf("SKIP: [%s] %s: %v\n", tier, channel, err)
		return
	}
	current.file.Printf("[SKIP] tier=%s channel=%s error=%v", tier, channel, err)
	if current.minLevel <= LevelInfo {
		current.console.Printf("  [Skip] %s", channel)
	}
}

// Warnings returns how many warnings were logged since Init
func Warnings() int {
	return int(warnings.Load())
}
