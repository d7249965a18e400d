package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LogWriter receives gin, gorm and application logs.
var LogWriter io.Writer = os.Stdout

// Logger is the structured application logger. InitLogging rebuilds it on LogWriter.
var Logger = zerolog.New(LogWriter).With().Timestamp().Logger()

// LogFilePath returns the backend log file, under LOG_DIR when set.
func LogFilePath() string {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	return filepath.Join(dir, "employee-records-api.log")
}

// InitLogging tees every log to stdout and the log file, then configures the
// level of Logger for the environment. The returned file is nil when only
// stdout could be used.
func InitLogging(environment string) (*os.File, io.Writer) {
	logFile, err := openLogFile(LogFilePath())
	if err != nil {
		log.Printf("Warning: %v, logging to stdout only", err)
		LogWriter = os.Stdout
	} else {
		LogWriter = io.MultiWriter(os.Stdout, logFile)
	}
	log.SetOutput(LogWriter)

	Logger = zerolog.New(LogWriter).
		Level(logLevel(environment)).
		With().Timestamp().Str("service", "employee-records-api").
		Logger()
	return logFile, LogWriter
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// logLevel is debug outside production unless LOG_LEVEL says otherwise.
func logLevel(environment string) zerolog.Level {
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			return lvl
		}
	}
	if strings.EqualFold(environment, "production") {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}
