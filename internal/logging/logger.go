package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	current   Config
	sink      io.WriteCloser
)

// Configure applies cfg to every component logger, existing and future.
// Call it once at startup, before the UI takes over the terminal.
func Configure(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current = cfg
	if sink != nil {
		sink.Close()
		sink = nil
	}
	for _, entry := range loggers {
		apply(entry.Logger)
	}
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	apply(logger)

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// apply configures logger from current. Callers hold loggersMu.
func apply(logger *logrus.Logger) {
	levelStr := "info"
	if env := os.Getenv("WORKTRACKER_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if current.Level != "" {
		levelStr = current.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch current.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{DisableTimestamp: true, DisableComponent: true})
	default:
		logger.SetFormatter(&TextFormatter{})
	}

	var writers []io.Writer
	if w := fileSink(); w != nil {
		writers = append(writers, w)
	}
	if logToStderr(level) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		// Interactive terminal with no file: keep the UI clean
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
}

func fileSink() io.Writer {
	if current.File == "" {
		return nil
	}
	if sink != nil {
		return sink
	}
	path := ExpandPath(current.File)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	sink = file
	return sink
}

func logToStderr(level logrus.Level) bool {
	switch current.Stderr {
	case "always":
		return true
	case "never":
		return false
	}
	isDebug := os.Getenv("WORKTRACKER_DEBUG") == "1" || level >= logrus.DebugLevel
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return isDebug || !isInteractive
}

// ExpandPath expands a leading tilde to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
