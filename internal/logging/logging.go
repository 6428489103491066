// README: Structured logger setup; JSON in production, text elsewhere.
package logging

import (
	"github.com/sirupsen/logrus"

	"guardian/internal/config"
)

func New(env string) *logrus.Logger {
	log := logrus.New()
	if env == config.EnvProduction {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
