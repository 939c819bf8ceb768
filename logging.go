package peg

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewSilentLogger returns a logrus.Logger configured to discard all
// output. A Grammar's own default logger is nil (tracing skipped
// entirely, see Grammar.SetLogger) — NewSilentLogger is for callers who
// want a non-nil logger handle up front, so they can raise its level
// later instead of constructing one from scratch.
func NewSilentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
