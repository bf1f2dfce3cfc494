package errcache

import (
	"time"

	"github.com/nhhollander/matrix-media-client/common/config"
)

var DownloadErrors *ErrCache

func Init() {
	DownloadErrors = NewErrCache(time.Duration(config.Get().Downloads.FailureCacheMinutes) * time.Minute)
}

func AdjustSize() {
	if DownloadErrors != nil {
		DownloadErrors.Resize(time.Duration(config.Get().Downloads.FailureCacheMinutes) * time.Minute)
	}
}
