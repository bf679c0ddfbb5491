// Package logging configures logrus for the binaries and bridges it to the
// Temporal SDK logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/log"
)

// New builds a text logger writing to stderr at the given level.
// An unknown level falls back to info and is reported.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stderr)
}

func NewWithOutput(level string, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		l.WithError(err).Warn("Unknown log level, using info")
	}
	l.SetLevel(lvl)
	return l
}

// Component returns an entry tagged with the component name.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Temporal adapts a logrus entry to Temporal's key/value logger.
type Temporal struct {
	entry *logrus.Entry
}

var (
	_ log.Logger     = (*Temporal)(nil)
	_ log.WithLogger = (*Temporal)(nil)
)

func NewTemporal(entry *logrus.Entry) *Temporal {
	return &Temporal{entry: entry}
}

func (t *Temporal) Debug(msg string, keyvals ...interface{}) {
	t.entry.WithFields(fields(keyvals)).Debug(msg)
}

func (t *Temporal) Info(msg string, keyvals ...interface{}) {
	t.entry.WithFields(fields(keyvals)).Info(msg)
}

func (t *Temporal) Warn(msg string, keyvals ...interface{}) {
	t.entry.WithFields(fields(keyvals)).Warn(msg)
}

func (t *Temporal) Error(msg string, keyvals ...interface{}) {
	t.entry.WithFields(fields(keyvals)).Error(msg)
}

func (t *Temporal) With(keyvals ...interface{}) log.Logger {
	return &Temporal{entry: t.entry.WithFields(fields(keyvals))}
}

// fields pairs up keyvals. A trailing key without a value is kept under
// "extra".
func fields(keyvals []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 >= len(keyvals) {
			f["extra"] = keyvals[i]
			break
		}
		f[fmt.Sprint(keyvals[i])] = keyvals[i+1]
	}
	return f
}
