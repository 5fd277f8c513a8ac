// Package logging sets up the zerolog root logger and the per-module child
// loggers used across the app.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	KeyModule = "mod"

	ModuleServer = "server"
	ModuleState  = "state"
	ModuleDB     = "db"
	ModuleCLI    = "cli"
)

func init() {
	zerolog.MessageFieldName = "message"
	zerolog.LevelFieldName = "level"
	zerolog.ErrorFieldName = "error"
}

// New builds the root logger. Unknown levels fall back to info.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Module returns a child logger tagged with the module name.
func Module(parent zerolog.Logger, module string) zerolog.Logger {
	return parent.With().Str(KeyModule, module).Logger()
}
