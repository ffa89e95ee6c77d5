package common

import (
	"os"

	"github.com/sirupsen/logrus"
)

// process-wide logger, configured once at startup
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function covers testing cases, where the entry point is not the
// main function. Unit tests would hit a nil entry without it.
func init() {
	InitLogger("info", "text", "development")
}

// InitLogger configures the shared logrus entry. Production gets the JSON
// formatter so log pipelines can parse fields; everything else stays text
// for readability.
func InitLogger(level, format, environment string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}

	if format == "json" || environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = logger.WithFields(logrus.Fields{
		"service":        "feed-svc",
		"is_development": environment != "production",
	})
}

// ComponentLogger returns a child entry tagged with the component name, so
// the drain worker, materializer and handlers are distinguishable in output.
func ComponentLogger(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
