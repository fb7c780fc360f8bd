package schemwright

import "github.com/sirupsen/logrus"

// NewLogger builds a logrus.Logger with the text formatter schemwright's
// CLI uses by default, at the given level.
func NewLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}
