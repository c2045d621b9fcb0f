// Package logger configures the global zerolog logger from command-line options.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds logging options shared by all commands.
type Logger struct {
	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Log output format" choice:"console" choice:"json" default:"console"`
	Color  bool   `long:"log-color"  env:"LOG_COLOR"  description:"Colorize console output"`
}

// Setup applies the options to the global logger.
func (l Logger) Setup() {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(l.writer(os.Stderr)).With().Timestamp().Logger()

	log.Debug().
		Str("level", level.String()).
		Str("format", l.Format).
		Msg("Logger configured")
}

func (l Logger) writer(out io.Writer) io.Writer {
	if l.Format == "json" {
		return out
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !l.Color,
		TimeFormat: time.TimeOnly,
	}
}
