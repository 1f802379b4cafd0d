package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the service logger. Output is JSON so log shippers can
// consume it without extra parsing.
func New() *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "time",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "msg",
		},
	})

	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	return log
}

// SetLevel applies a level string once configuration has been loaded.
// Unknown values fall back to info.
func SetLevel(log *logrus.Logger, level string) {
	log.SetLevel(parseLevel(level))
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
