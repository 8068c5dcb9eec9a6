package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
)

// logger is the CLI logger. It writes to stderr so structured stdout stays
// parseable.
var logger = newLogger(io.Discard, logrus.WarnLevel)

func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}
