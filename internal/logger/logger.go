// Package logger provides the leveled diagnostic logger shared by the
// programs under cmd/.
//
// Entries go to standard error through logrus and carry the name of the
// emitting component as a field, so that standard output only carries the
// results of a program.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Default logs Info and above to standard error.
var Default = New(os.Stderr, logrus.InfoLevel)

// New returns a logrus logger writing plain text entries with
// millisecond timestamps to out, dropping entries below level.
func New(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.Out = out
	l.Formatter = &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
	l.SetLevel(level)
	return l
}

// ParseLevel returns the logrus level with the given name. An empty name
// means Info.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(name)
}

// Debug logs a formatted debug message for component on Default.
func Debug(component string, format string, args ...any) {
	Default.WithField("component", component).Debugf(format, args...)
}

// Error logs a formatted error message for component on Default.
func Error(component string, format string, args ...any) {
	Default.WithField("component", component).Errorf(format, args...)
}
