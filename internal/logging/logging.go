// ABOUTME: Structured logger construction for the notebook.
// ABOUTME: Wraps zerolog with level parsing and optional console output.

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Builder assembles a zerolog.Logger step by step.
type Builder struct {
	writer  io.Writer
	level   zerolog.Level
	console bool
}

func New() *Builder {
	return &Builder{
		writer: os.Stderr,
		level:  zerolog.InfoLevel,
	}
}

// To sets the destination writer.
func (b *Builder) To(w io.Writer) *Builder {
	if w != nil {
		b.writer = w
	}
	return b
}

// Level sets the minimum level by name. Unknown names keep the current level.
func (b *Builder) Level(name string) *Builder {
	if lvl, err := ParseLevel(name); err == nil {
		b.level = lvl
	}
	return b
}

// Console switches to human-readable output.
func (b *Builder) Console(enabled bool) *Builder {
	b.console = enabled
	return b
}

func (b *Builder) Make() zerolog.Logger {
	w := b.writer
	if b.console {
		w = zerolog.ConsoleWriter{Out: b.writer, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(b.level).With().Timestamp().Logger()
}

// ParseLevel maps a config value such as "warn" to a zerolog level.
// Empty means info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(name)
}
