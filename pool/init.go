package pool

import (
	"github.com/getsentry/sentry-go"
	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/sirupsen/logrus"
)

var DownloadQueue *Queue

func Init() {
	var err error
	if DownloadQueue, err = NewQueue(config.Get().Downloads.NumWorkers, "downloads"); err != nil {
		sentry.CaptureException(err)
		logrus.Error("Error setting up downloads queue")
		logrus.Fatal(err)
	}
}

func AdjustSize() {
	if DownloadQueue != nil {
		DownloadQueue.pool.Tune(config.Get().Downloads.NumWorkers)
	}
}

func Drain() {
	if DownloadQueue != nil {
		DownloadQueue.pool.Release()
		DownloadQueue = nil
	}
}
