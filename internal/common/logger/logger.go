package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level controls which messages reach the terminal.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "silent"
	}
}

// Logger writes leveled messages to a terminal stream and, when enabled,
// a full trace to a log file. The terminal respects the configured level;
// the file always receives everything.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
	file  *os.File
}

// New builds a Logger writing terminal output to out.
func New(out io.Writer, level Level) *Logger {
	return &Logger{level: level, out: out}
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the process-wide logger, created on first use at info
// level on stderr.
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(os.Stderr, LevelInfo)
	})
	return defaultLogger
}

// SetLevel changes the terminal threshold.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetVerbose lowers the threshold to debug.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LevelDebug)
	}
}

// SetQuiet raises the threshold so only errors reach the terminal.
func (l *Logger) SetQuiet(quiet bool) {
	if quiet {
		l.SetLevel(LevelError)
	}
}

// LogFilePath returns where the trace log lives:
// $XDG_STATE_HOME/gvc/gvc.log, with ~/.local/state as the fallback root.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "gvc", "gvc.log"), nil
}

// EnableFileLogging opens the trace log for appending, creating the state
// directory when missing. Every message logged afterwards lands in the
// file regardless of the terminal level.
func (l *Logger) EnableFileLogging() error {
	path, err := LogFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	return nil
}

// Close releases the trace log if open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level && l.file == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)

	if level >= l.level {
		if level >= LevelWarn || level == LevelDebug {
			fmt.Fprintf(l.out, "%s: %s\n", level, msg)
		} else {
			fmt.Fprintln(l.out, msg)
		}
	}
	if l.file != nil {
		fmt.Fprintf(l.file, "%s %s %s\n", time.Now().Format(time.RFC3339), level, msg)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Package-level shorthands routed through Default.
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }
func Info(format string, args ...interface{})  { Default().Info(format, args...) }
func Warn(format string, args ...interface{})  { Default().Warn(format, args...) }
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
func SetVerbose(v bool)                        { Default().SetVerbose(v) }
func SetQuiet(q bool)                          { Default().SetQuiet(q) }
func EnableFileLogging() error                 { return Default().EnableFileLogging() }
func Close() error                             { return Default().Close() }
