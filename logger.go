package shopsync

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

func parseLogLevel(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Logger writes leveled messages to both a per-run log file and the terminal.
type Logger struct {
	logger *log.Logger
	level  int
}

func newLogger(name, level string) *Logger {
	currentDate := time.Now().Format("2006-01-02")
	directory := filepath.Join("storage", "logs", name)

	writer := io.Writer(os.Stdout)
	if err := os.MkdirAll(directory, 0755); err == nil {
		logFilePath := filepath.Join(directory, currentDate+"_application.log")
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err == nil {
			writer = io.MultiWriter(file, os.Stdout)
		} else {
			log.Printf("Failed to open log file, logging to stdout only: %v", err)
		}
	} else {
		log.Printf("Failed to create log directory, logging to stdout only: %v", err)
	}

	return &Logger{
		logger: log.New(writer, "⏱️ ", log.LstdFlags),
		level:  parseLogLevel(level),
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level <= levelDebug {
		l.logger.Printf("🔍 DEBUG: "+format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level <= levelInfo {
		l.logger.Printf("📢 INFO: "+format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level <= levelWarn {
		l.logger.Printf("⚠️ WARN: "+format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level <= levelError {
		l.logger.Printf("🛑 ERROR: "+format, args...)
	}
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.logger.Fatalf("🚨 FATAL: "+format, args...)
}
