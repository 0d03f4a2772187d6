// Package logging builds zerolog loggers from the configuration.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Hakley10/convert-and-minimize/internal/config"
)

// New returns a logger writing to w in the configured format and level.
// Unknown levels fall back to info.
func New(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(parseLevel(cfg.Level))
}

// Setup installs a stderr logger as the global log.Logger.
func Setup(cfg config.LogConfig) {
	log.Logger = New(os.Stderr, cfg)
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
