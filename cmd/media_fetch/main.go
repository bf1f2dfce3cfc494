package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/nhhollander/matrix-media-client/common/logging"
	"github.com/nhhollander/matrix-media-client/common/rcontext"
	"github.com/nhhollander/matrix-media-client/common/runtime"
	"github.com/nhhollander/matrix-media-client/common/version"
	"github.com/nhhollander/matrix-media-client/errcache"
	"github.com/nhhollander/matrix-media-client/matrix"
	"github.com/nhhollander/matrix-media-client/media"
	"github.com/nhhollander/matrix-media-client/metrics"
	"github.com/nhhollander/matrix-media-client/pool"
	"github.com/nhhollander/matrix-media-client/util"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "media-client.yaml", "The path to the configuration")
	outDir := flag.String("out", ".", "The directory to write downloaded media to")
	thumbnail := flag.Bool("thumbnail", false, "Fetch thumbnails instead of full media")
	width := flag.Int("width", 0, "Thumbnail width (0 = config default)")
	height := flag.Int("height", 0, "Thumbnail height (0 = config default)")
	method := flag.String("method", "", "Thumbnail fit method: scale or crop (empty = config default)")
	versionFlag := flag.Bool("version", false, "Prints the version and exits")
	flag.Parse()

	if *versionFlag {
		version.Print(false)
		return // exit 0
	}

	// Override config path with env var for Docker users
	configEnv := os.Getenv("MEDIA_CLIENT_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}

	config.Path = *configPath

	err := logging.Setup(
		config.Get().General.LogDirectory,
		config.Get().General.LogColors,
		config.Get().General.JsonLogs,
		config.Get().General.LogLevel,
	)
	if err != nil {
		panic(err)
	}

	logrus.Info("Starting up...")
	runtime.RunStartupSequence()

	metrics.Init()
	pool.Init()
	errcache.Init()

	logrus.Info("Starting config watcher...")
	watcher := config.Watch()
	defer watcher.Close()
	config.OnReload(pool.AdjustSize)
	config.OnReload(errcache.AdjustSize)
	config.OnReload(metrics.Reload)

	// Set up a listener for SIGINT so an interrupt mid-download still
	// drains the queue and stops the metrics listener
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, os.Kill)
	go func() {
		<-stop
		logrus.Warn("Stop signal received")
		stopAll()
		os.Exit(1)
	}()

	if flag.NArg() == 0 {
		logrus.Fatal("No mxc URIs given")
	}

	w := *width
	h := *height
	m := *method
	if w <= 0 {
		w = config.Get().Thumbnails.DefaultWidth
	}
	if h <= 0 {
		h = config.Get().Thumbnails.DefaultHeight
	}
	if m == "" {
		m = config.Get().Thumbnails.DefaultMethod
	}

	client := matrix.NewClient("")
	failed := false
	for _, mxc := range flag.Args() {
		ctx := rcontext.Initial().LogWithFields(logrus.Fields{"mxc": mxc})
		if err := fetchOne(ctx, client, mxc, *outDir, *thumbnail, w, h, m); err != nil {
			ctx.Log.Error(err)
			failed = true
		}
	}

	stopAll()

	if failed {
		os.Exit(1)
	}
}

func stopAll() {
	logrus.Info("Stopping metrics...")
	metrics.Stop()

	logrus.Info("Draining download queue...")
	pool.Drain()
}

func fetchOne(ctx rcontext.RequestContext, client *matrix.Client, mxc string, outDir string, thumbnail bool, width int, height int, method string) error {
	md, err := media.FromMxc(client, mxc)
	if err != nil {
		return err
	}

	mode, err := md.RenderMode(ctx)
	if err != nil {
		return err
	}
	if mode == common.RenderModeBlocked {
		ctx.Log.Warn("Media is blocked by the render policy - skipping")
		return nil
	}

	start := time.Now()
	var resp *media.DownloadResponse
	if thumbnail {
		resp, err = md.DownloadThumbnailOfSource(ctx, width, height, method)
	} else {
		resp, err = md.DownloadSource(ctx)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	target := path.Join(outDir, md.SrcMxc().MediaId)
	f, err := os.Create(target)
	if err != nil {
		return err
	}

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		return err
	}

	detected := resp.ContentType
	if mimeType, err2 := util.DetectMimeType(f); err2 == nil {
		detected = mimeType
	}
	if err = f.Close(); err != nil {
		return err
	}

	ctx.Log.Infof("Wrote %s (%s, %s) to %s in %s", resp.Filename, humanize.Bytes(uint64(written)), detected, target, time.Since(start))
	return nil
}
