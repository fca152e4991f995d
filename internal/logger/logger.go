package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log output formats accepted by SetFormat.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Init installs a console logger so startup messages are readable before the
// configuration is loaded.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = newLogger(FormatConsole, os.Stderr)
}

// SetFormat switches the global logger to the given output format. Anything
// other than "json" selects console output.
func SetFormat(format string) {
	log.Logger = newLogger(format, os.Stderr)
}

func newLogger(format string, w io.Writer) zerolog.Logger {
	if format == FormatJSON {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}).
		With().Timestamp().Logger()
}

// SetLevel applies a textual level ("debug", "info", ...). Unknown values keep info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("Unknown log level, falling back to info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
