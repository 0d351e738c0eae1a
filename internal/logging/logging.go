package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/config"
)

// Options selects where and how much to log
type Options struct {
	Level string
	Debug bool
	// File, when set, receives the output instead of Writer
	File   string
	Writer io.Writer
}

// New builds a logger. Debug overrides Level.
// The returned closer releases the log file and is never nil.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   opts.File != "",
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nopCloser{}, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.File == "" {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		logger.SetOutput(w)
		return logger, nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
