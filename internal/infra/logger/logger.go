package logger

import (
	"os"
	"strings"

	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// New builds the application logger from configuration: level from
// LOG_LEVEL, JSON output in production/staging, colored text elsewhere.
func New(cfg *config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.Environment) {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	return log
}

// DeadLetter tags an entry so dropped events (unknown record ids,
// unparseable callbacks) can be filtered apart from operational noise.
func DeadLetter(log *logrus.Logger) *logrus.Entry {
	return log.WithField("dead_letter", true)
}
