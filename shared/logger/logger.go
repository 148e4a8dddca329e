// Package logger holds the process-wide logrus logger used by the client and
// the server.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init with logrus defaults.
var Log = logrus.New()

// Init configures Log from the environment. LOG_LEVEL picks the level
// (default "info"), LOG_FORMAT=json selects the JSON formatter.
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure applies a level name, a format name and an output to Log.
func Configure(levelName, format string, out io.Writer) {
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(out)
}

// Component returns an entry tagged with a component name, e.g. "loop".
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
