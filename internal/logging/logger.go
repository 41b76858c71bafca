package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the application logger is built.
type Options struct {
	Level       string // debug, info, warn, error
	Format      string // json or console
	App         string
	Environment string
}

// New constructs a zerolog logger writing to stdout.
// Defaults to JSON at info level when fields are empty or invalid.
func New(opts Options) *zerolog.Logger {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter is New with an explicit output, used by tests.
func NewWithWriter(opts Options, out io.Writer) *zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level))); err == nil && opts.Level != "" {
		level = parsed
	}

	if strings.ToLower(strings.TrimSpace(opts.Format)) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", opts.App).
		Str("env", opts.Environment).
		Logger()

	return &base
}
