package matrix

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/nhhollander/matrix-media-client/common/rcontext"
	"github.com/nhhollander/matrix-media-client/errcache"
	"github.com/nhhollander/matrix-media-client/media"
	"github.com/nhhollander/matrix-media-client/metrics"
	"github.com/nhhollander/matrix-media-client/pool"
	"github.com/nhhollander/matrix-media-client/util"
	"github.com/nhhollander/matrix-media-client/util/cleanup"
	"github.com/nhhollander/matrix-media-client/util/readers"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Client resolves mxc references to client-server API URLs and fetches
// them. It implements media.Client. AccessToken, when set, overrides any
// per-homeserver token from the config.
type Client struct {
	AccessToken string
}

func NewClient(accessToken string) *Client {
	return &Client{AccessToken: accessToken}
}

func (c *Client) DownloadURL(uri media.ContentURI) (string, error) {
	base, err := GetClientApiUrl(uri.Origin)
	if err != nil {
		return "", err
	}
	return util.MakeUrl(base, "/_matrix/media/v3/download", url.PathEscape(uri.Origin), url.PathEscape(uri.MediaId)) + "?allow_redirect=true", nil
}

func (c *Client) ThumbnailURL(uri media.ContentURI, width int, height int, method string) (string, error) {
	if method == "" {
		method = "scale"
	}
	if method != "scale" && method != "crop" {
		return "", common.ErrInvalidThumbnailMethod
	}
	if width <= 0 || height <= 0 {
		return "", common.ErrInvalidDimensions
	}

	base, err := GetClientApiUrl(uri.Origin)
	if err != nil {
		return "", err
	}
	metrics.ThumbnailsRequested.With(prometheus.Labels{"origin": uri.Origin, "method": method}).Inc()
	thumbUrl := util.MakeUrl(base, "/_matrix/media/v3/thumbnail", url.PathEscape(uri.Origin), url.PathEscape(uri.MediaId))
	return fmt.Sprintf("%s?width=%d&height=%d&method=%s&allow_redirect=true", thumbUrl, width, height, method), nil
}

type fetchResult struct {
	resp *media.DownloadResponse
	err  error
}

// Fetch GETs a previously resolved URL. Requests run on the download pool
// when one has been initialized, and recent failures for the same URL are
// short-circuited without touching the network.
func (c *Client) Fetch(ctx rcontext.RequestContext, urlStr string, origin string) (*media.DownloadResponse, error) {
	if errcache.DownloadErrors != nil {
		if err := errcache.DownloadErrors.Get(urlStr); err != nil {
			return nil, err
		}
	}

	ch := make(chan fetchResult)
	defer close(ch)
	fn := func() {
		resp, err := c.doFetch(ctx, urlStr, origin)
		if err != nil && errcache.DownloadErrors != nil {
			errcache.DownloadErrors.Set(urlStr, err)
		}
		ch <- fetchResult{resp: resp, err: err}
	}
	if pool.DownloadQueue != nil {
		if err := pool.DownloadQueue.Schedule(fn); err != nil {
			return nil, err
		}
	} else {
		go fn()
	}

	res := <-ch
	return res.resp, res.err
}

func (c *Client) doFetch(ctx rcontext.RequestContext, urlStr string, origin string) (*media.DownloadResponse, error) {
	cb := getBreaker(origin)

	var out *media.DownloadResponse
	err := cb.CallContext(ctx, func() error {
		ctx.Log.Infof("Calling GET %s", urlStr)
		req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
		if err != nil {
			return err
		}

		req.Header.Set("User-Agent", ctx.Config.General.UserAgent)
		if token := c.accessTokenFor(origin); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		client := &http.Client{
			Timeout: time.Duration(ctx.Config.TimeoutSeconds.ClientServer) * time.Second,
		}
		timer := prometheus.NewTimer(metrics.HttpResponseTime.With(prometheus.Labels{"origin": origin}))
		res, err := client.Do(req)
		timer.ObserveDuration()
		if err != nil {
			return err
		}
		metrics.MediaDownloaded.With(prometheus.Labels{"origin": origin}).Inc()

		if res.StatusCode == http.StatusNotFound {
			cleanup.DumpAndCloseStream(res.Body)
			return common.ErrMediaNotFound
		} else if res.StatusCode != http.StatusOK {
			mtxErr := &errorResponse{}
			if err2 := decodeErrorBody(res, mtxErr); err2 == nil && mtxErr.ErrorCode != "" {
				return mtxErr
			}
			return errors.New(fmt.Sprintf("unexpected status code %d", res.StatusCode))
		}

		contentLength := int64(0)
		if res.Header.Get("Content-Length") != "" {
			contentLength, err = strconv.ParseInt(res.Header.Get("Content-Length"), 10, 64)
			if err != nil {
				cleanup.DumpAndCloseStream(res.Body)
				return err
			}
		}
		if contentLength != 0 && ctx.Config.Downloads.MaxSizeBytes > 0 && contentLength > ctx.Config.Downloads.MaxSizeBytes {
			cleanup.DumpAndCloseStream(res.Body)
			return common.ErrMediaTooLarge
		}

		r := res.Body
		if ctx.Config.Downloads.MaxSizeBytes > 0 {
			r = readers.LimitReaderWithOverrunError(res.Body, ctx.Config.Downloads.MaxSizeBytes)
		}

		contentType := res.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream" // binary
		}

		fileName := "download"
		_, params, err := mime.ParseMediaType(res.Header.Get("Content-Disposition"))
		if err == nil && params["filename"] != "" {
			fileName = params["filename"]
		}

		out = &media.DownloadResponse{
			Body:          r,
			ContentType:   contentType,
			Filename:      fileName,
			ContentLength: contentLength,
		}
		return nil
	}, 1*time.Minute)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) accessTokenFor(origin string) string {
	if c.AccessToken != "" {
		return c.AccessToken
	}
	if hs := config.GetHomeserver(origin); hs != nil {
		return hs.AccessToken
	}
	return ""
}
