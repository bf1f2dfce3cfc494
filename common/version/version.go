package version

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

const Name = "matrix-media-client"

var GitCommit string
var Version string

func SetDefaults() {
	build, infoOk := debug.ReadBuildInfo()

	if GitCommit == "" {
		GitCommit = "unknown"
		if infoOk {
			for _, setting := range build.Settings {
				if setting.Key == "vcs.revision" {
					GitCommit = setting.Value
					break
				}
			}
		}
	}

	if Version == "" {
		Version = "dev"
	}
}

func Print(usingLogger bool) {
	SetDefaults()

	line := fmt.Sprintf("%s %s (%s)", Name, Version, GitCommit)
	if usingLogger {
		logrus.Info(line)
	} else {
		fmt.Println(line)
	}
}
