package logx

import (
	"io"
	"os"

	"github.com/brb-shop/storefront/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

type LoggerOpts struct {
	Environment core.Environment
	// Writer overrides the destination. The shop TUI owns stdout/stderr, so it
	// points logs at a file or io.Discard.
	Writer io.Writer
}

func safe(opts ...LoggerOpts) *LoggerOpts {
	if len(opts) == 0 {
		return DefaultLoggerOpts
	}
	return &opts[0]
}

func Init(opts ...LoggerOpts) {
	o := safe(opts...)
	if o.Environment == core.Production {
		w := o.Writer
		if w == nil {
			w = os.Stderr
		}
		log.Logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		return
	}

	var w io.Writer = zerolog.NewConsoleWriter()
	if o.Writer != nil {
		w = zerolog.ConsoleWriter{Out: o.Writer, NoColor: true}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Panic() *zerolog.Event {
	return log.Panic()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
