package runtime

import (
	"github.com/getsentry/sentry-go"
	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/nhhollander/matrix-media-client/common/version"
	"github.com/sirupsen/logrus"
)

func RunStartupSequence() {
	version.Print(true)
	config.PrintHomeserverInfo()
	loadSentry()
}

func loadSentry() {
	sentryConf := config.Get().Sentry
	if !sentryConf.Enabled {
		logrus.Debug("Sentry reporting disabled")
		return
	}

	logrus.Info("Setting up Sentry for debugging...")
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         sentryConf.Dsn,
		Environment: sentryConf.Environment,
		Debug:       sentryConf.Debug,
		Release:     version.Version,
	})
	if err != nil {
		logrus.Fatal(err)
	}
}
