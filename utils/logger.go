package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// ConfigureLogger switches to JSON output and info level in production
func ConfigureLogger(production bool) {
	if production {
		Log.SetFormatter(&logrus.JSONFormatter{})
		Log.SetLevel(logrus.InfoLevel)
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.DebugLevel)
}

// WithFields is a shorthand for Log.WithFields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}
