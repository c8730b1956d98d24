package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New logs to stderr; stdout carries command output.
func New(level string) zerolog.Logger {
	return NewWriter(os.Stderr, level)
}

func NewWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
