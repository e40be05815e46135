// Package logger builds the zerolog logger used across the application.
//
// The interactive UI owns the terminal, so it logs to a rotating file only.
// One-shot commands may additionally pass a console writer.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sebastiantruijens/movie-tui/config"
)

// FileName is the name of the log file created under logging.path.
const FileName = "movie-tui.log"

// Logger wraps zerolog for application logging.
type Logger struct {
	zerolog.Logger
	rotator *lumberjack.Logger
}

// New creates a new logger instance. console may be nil; when neither a
// console nor a log path is available the logger discards everything.
func New(cfg config.LoggingConfig, console io.Writer) (*Logger, error) {
	var writers []io.Writer

	if console != nil {
		if cfg.Format == "json" {
			writers = append(writers, console)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        console,
				TimeFormat: time.RFC3339,
			})
		}
	}

	var rotator *lumberjack.Logger
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, err
		}

		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 5
		}
		maxAge := cfg.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}

		rotator = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, FileName),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     maxAge,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		// Files always get JSON lines.
		writers = append(writers, rotator)
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		return &Logger{Logger: zerolog.Nop()}, nil
	case 1:
		output = writers[0]
	default:
		output = io.MultiWriter(writers...)
	}

	logger := zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger, rotator: rotator}, nil
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}

// ParseLevel converts string level to zerolog.Level
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithComponent returns a child logger tagged with the component name.
func (l *Logger) WithComponent(component string) zerolog.Logger {
	return l.Logger.With().Str("component", component).Logger()
}
