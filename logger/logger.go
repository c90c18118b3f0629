package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logrus logger tagged with the service name. LOG_LEVEL picks
// the level and LOG_FORMAT=json switches to the JSON formatter.
func New(service string) *logrus.Entry {
	return NewWithOutput(service, os.Stderr)
}

// NewWithOutput is New writing to w.
func NewWithOutput(service string, w io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(w)

	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log.WithField("service", service)
}

// Discard returns a logger that drops everything. Used by tests and callers
// that do not care about logs.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
