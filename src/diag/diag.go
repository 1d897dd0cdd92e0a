// Package diag is the diagnostics sink. Every command writes structured
// events (level, action tag, message, optional profile) to a log file under
// the data directory; verbose runs mirror them to stderr.
package diag

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"confsync/src/errdefs"
)

// Logger wraps a logrus instance bound to the confsync log file.
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// Open appends to the log file at path, creating it and its directory on
// first use. With verbose the events are also mirrored to mirror (usually
// stderr) and the level drops to debug.
func Open(path string, verbose bool, mirror io.Writer) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errdefs.IO(err, "create log dir")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errdefs.IO(err, "open log %s", path)
	}
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(f)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
		if mirror != nil {
			l.SetOutput(io.MultiWriter(f, mirror))
		}
	}
	return &Logger{log: l, file: f}, nil
}

// Discard returns a logger that drops everything. Used before the data
// directory is known and in tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{log: l}
}

// Close releases the log file.
func (d *Logger) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}

// Event records one diagnostic event. action is a short upper-case tag such
// as BACKUP or RESTORE; profile may be empty for events outside any profile.
func (d *Logger) Event(level logrus.Level, action, profile, message string) {
	entry := d.log.WithField("action", action)
	if profile != "" {
		entry = entry.WithField("profile", profile)
	}
	entry.Log(level, message)
}

// Infof records an informational event.
func (d *Logger) Infof(action, profile, format string, args ...any) {
	d.logf(logrus.InfoLevel, action, profile, format, args...)
}

// Warnf records a warning.
func (d *Logger) Warnf(action, profile, format string, args ...any) {
	d.logf(logrus.WarnLevel, action, profile, format, args...)
}

// Errorf records an error event.
func (d *Logger) Errorf(action, profile, format string, args ...any) {
	d.logf(logrus.ErrorLevel, action, profile, format, args...)
}

// Debugf records a debug event, visible only in verbose runs.
func (d *Logger) Debugf(action, profile, format string, args ...any) {
	d.logf(logrus.DebugLevel, action, profile, format, args...)
}

func (d *Logger) logf(level logrus.Level, action, profile, format string, args ...any) {
	entry := d.log.WithField("action", action)
	if profile != "" {
		entry = entry.WithField("profile", profile)
	}
	entry.Logf(level, format, args...)
}
