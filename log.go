package ovsdb

import "github.com/sirupsen/logrus"

// NewLogger returns a logrus logger preconfigured the way this package's
// own connect/disconnect and frame-level tracing expects: text output,
// full timestamps, level controlled by the caller.
func NewLogger(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}
