package dirmigrate

import (
	"log"
)

// Logger receives the OK and FAILED lines a [Provider] prints in verbose mode. *log.Logger and
// *logrus.Logger both satisfy it.
type Logger interface {
	Printf(format string, v ...any)
}

// NewStdLogger returns a logger writing to the standard library's default logger.
func NewStdLogger() Logger {
	return log.Default()
}

// NopLogger returns a logger that discards all logged output.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
