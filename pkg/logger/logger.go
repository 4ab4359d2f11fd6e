package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures the shared logger from the environment.
// LOG_LEVEL selects the level (default "info"), LOG_FORMAT=json switches
// to the JSON formatter, anything else keeps the colored text formatter.
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// WithRound returns an entry tagged with a session id and player name
func WithRound(sessionID, player string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"session": sessionID,
		"player":  player,
	})
}
