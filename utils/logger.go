package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level is the minimum severity a Logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a level name such as "info" into a Level.
func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	if strings.EqualFold(s, "warning") {
		return LevelWarn, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger wraps the standard logger with file output
type Logger struct {
	*log.Logger
	file  *os.File
	level Level
}

// NewLogger creates a new logger that writes to both console and a
// timestamped file in logDir
func NewLogger(logDir string, level Level) (*Logger, error) {
	// Ensure log directory exists
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFilePath := filepath.Join(logDir, fmt.Sprintf("mutkit_%s.log", timestamp))

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := NewWriterLogger(io.MultiWriter(os.Stdout, file), level)
	logger.file = file
	return logger, nil
}

// NewWriterLogger creates a logger writing to w only.
func NewWriterLogger(w io.Writer, level Level) *Logger {
	return &Logger{
		Logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError+1)
}

// Level returns the minimum level written.
func (l *Logger) Level() Level {
	return l.level
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// logWithCaller logs a message with caller information
func (l *Logger) logWithCaller(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	message := fmt.Sprintf(format, v...)
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		l.Printf("%-20s [%s] %s", "", level, message)
		return
	}
	l.Printf("%-20s [%s] %s", fmt.Sprintf("%s:%d:", filepath.Base(file), line), level, message)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logWithCaller(LevelInfo, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logWithCaller(LevelError, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logWithCaller(LevelWarn, format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logWithCaller(LevelDebug, format, v...)
}
