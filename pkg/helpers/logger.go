package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// baseFields stamps every entry with the process identity.
type baseFields logrus.Fields

func (baseFields) Levels() []logrus.Level { return logrus.AllLevels }

func (f baseFields) Fire(e *logrus.Entry) error {
	for k, v := range f {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

// NewLogger writes text to stdout in development and JSON elsewhere. level
// overrides the env default (debug in development, info otherwise) when it
// parses.
func NewLogger(appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.AddHook(baseFields{"app": appName, "env": env})

	lvl := logrus.InfoLevel
	if env == "development" {
		lvl = logrus.DebugLevel
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			lvl = parsed
		} else {
			logger.WithField("level", level).Warn("unknown LOG_LEVEL, keeping default")
		}
	}
	logger.SetLevel(lvl)
	return logger
}
