package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level so configuration loading can be followed.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(console(os.Stdout))
	log.Trace().Msg("Zerolog initialized.")
}

// Configure switches the global logger to its final shape once configuration is loaded.
// Outside development the console writer is replaced with plain JSON lines.
func Configure(cfg *config.Config) {
	log.Logger = zerolog.New(writerFor(cfg, os.Stdout)).
		With().
		Timestamp().
		Str("service", cfg.App.Name).
		Logger()

	SetLogLevel(cfg)
}

func writerFor(cfg *config.Config, out io.Writer) io.Writer {
	if cfg.Server.Env == "" || cfg.IsDevelopment() {
		return console(out)
	}

	return out
}

func console(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Unparseable values fall back to trace.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel

		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
