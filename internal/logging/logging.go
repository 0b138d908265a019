// Package logging centralizes logrus setup, matching the teacher's
// chat-service bootstrap (JSON-formatted, level-configurable logger handed
// to every collaborator rather than used as a package-level singleton).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
)

// New builds a logrus.Logger writing JSON lines to stderr, at the given
// level ("debug", "info", "warn", "error"; defaults to info on parse error).
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05Z07:00"})
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// WarnEntity logs a per-item isolated failure (one user, one thread, one
// ticket) at Warn level, naming the affected entity. It never returns an
// error: per-item failures are isolated by design, the caller simply
// continues the gather.
func WarnEntity(logger logrus.FieldLogger, kind slackerr.Kind, entity string, err error) {
	logger.WithFields(logrus.Fields{
		"kind":   kind.String(),
		"entity": entity,
	}).Warn(err)
}
