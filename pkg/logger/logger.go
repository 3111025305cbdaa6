package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger.
// development: human readable console output, debug level
// others: JSON lines on stdout, info level
func Init(env string) {
	if env == "development" {
		setup(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}, zerolog.DebugLevel)
		return
	}
	setup(os.Stdout, zerolog.InfoLevel)
}

func setup(out io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Every level takes the same optional context map; nil means no fields.

func Debug(msg string, fields map[string]interface{}) {
	emit(log.Debug(), msg, fields)
}

func Info(msg string, fields map[string]interface{}) {
	emit(log.Info(), msg, fields)
}

func Warn(msg string, fields map[string]interface{}) {
	emit(log.Warn(), msg, fields)
}

func Error(msg string, err error) {
	emit(log.Error().Err(err), msg, nil)
}

// ErrorWithFields logs err together with extra context fields
func ErrorWithFields(msg string, err error, fields map[string]interface{}) {
	emit(log.Error().Err(err), msg, fields)
}

// emit skips the Fields call for empty maps, disabled levels return a nil event
func emit(e *zerolog.Event, msg string, fields map[string]interface{}) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}
