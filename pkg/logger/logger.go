// Package logger defines the logging interface used across the SDK and a
// default implementation backed by zerolog. Args are alternating key/value
// pairs, in the style of log/slog.
package logger

import (
	"io"

	"github.com/rs/zerolog"
)

type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ZeroLogger adapts a zerolog.Logger to the Logger interface.
type ZeroLogger struct {
	logger zerolog.Logger
}

func New(w io.Writer) *ZeroLogger {
	return &ZeroLogger{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// FromZerolog wraps an existing zerolog.Logger so callers can keep their
// own output, level, and context configuration.
func FromZerolog(l zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{logger: l}
}

// Nop returns a Logger that discards everything.
func Nop() *ZeroLogger {
	return &ZeroLogger{logger: zerolog.Nop()}
}

func (z *ZeroLogger) Error(msg string, args ...any) {
	z.emit(z.logger.Error(), msg, args)
}

func (z *ZeroLogger) Warn(msg string, args ...any) {
	z.emit(z.logger.Warn(), msg, args)
}

func (z *ZeroLogger) Info(msg string, args ...any) {
	z.emit(z.logger.Info(), msg, args)
}

func (z *ZeroLogger) Debug(msg string, args ...any) {
	z.emit(z.logger.Debug(), msg, args)
}

func (z *ZeroLogger) emit(ev *zerolog.Event, msg string, args []any) {
	if len(args) > 0 {
		// zerolog accepts alternating key/value slices directly.
		ev = ev.Fields(args)
	}
	ev.Msg(msg)
}
