package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the JSON logger shared by the server and its services.
func NewLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	log.SetLevel(level)
	return log
}
