package matrix

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/alioygur/is"
	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/nhhollander/matrix-media-client/metrics"
	"github.com/nhhollander/matrix-media-client/util"
	"github.com/nhhollander/matrix-media-client/util/cleanup"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	typedsf "github.com/t2bot/go-typed-singleflight"
)

var apiUrlCacheInstance *cache.Cache
var apiUrlSingletonLock = &sync.Once{}
var apiUrlSf = new(typedsf.Group[string])

func setupCache() {
	if apiUrlCacheInstance == nil {
		apiUrlSingletonLock.Do(func() {
			apiUrlCacheInstance = cache.New(1*time.Hour, 2*time.Hour)
		})
	}
}

// GetClientApiUrl resolves the client-server API base URL for an origin. A
// configured homeserver entry wins; everything else goes through
// .well-known discovery and gets cached for an hour.
func GetClientApiUrl(origin string) (string, error) {
	if hs := config.GetHomeserver(origin); hs != nil && hs.ClientServerApi != "" {
		return strings.TrimSuffix(hs.ClientServerApi, "/"), nil
	}

	setupCache()
	if record, found := apiUrlCacheInstance.Get(origin); found {
		metrics.CacheHits.With(prometheus.Labels{"cache": "client_api_urls"}).Inc()
		return record.(string), nil
	}
	metrics.CacheMisses.With(prometheus.Labels{"cache": "client_api_urls"}).Inc()

	url, err, _ := apiUrlSf.Do(origin, func() (string, error) {
		url, err := lookupClientApiUrl(origin)
		if err != nil {
			return "", err
		}
		apiUrlCacheInstance.Set(origin, url, cache.DefaultExpiration)
		return url, nil
	})
	return url, err
}

func lookupClientApiUrl(origin string) (string, error) {
	logrus.Debug("Getting client API URL for " + origin)

	scheme := "https"
	if os.Getenv("MEDIA_CLIENT_HTTP_ONLY") == "true" {
		logrus.Warnf("Making non-https request to %s because MEDIA_CLIENT_HTTP_ONLY is set to true", origin)
		scheme = "http"
	}

	h, p, err := net.SplitHostPort(origin)
	defPort := false
	if err != nil && strings.HasSuffix(err.Error(), "missing port in address") {
		h, p, err = net.SplitHostPort(origin + ":443")
		defPort = true
	}
	if err != nil {
		return "", errors.Wrap(common.ErrHostNotFound, err.Error())
	}

	// If the origin is an IP, or carries an explicit port, talk to it directly
	if is.IP(h) || !defPort {
		url := fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(h, p))
		logrus.Debug("Client API URL for " + origin + " is " + url + " (direct)")
		return url, nil
	}

	// Otherwise ask .well-known where the client-server API lives
	timeout := time.Duration(config.Get().TimeoutSeconds.Discovery) * time.Second
	url, err := lookupWellKnownClient(fmt.Sprintf("%s://%s", scheme, h), timeout)
	if err == nil {
		logrus.Debug("Client API URL for " + origin + " is " + url + " (well-known)")
		return url, nil
	}
	logrus.Debug("No usable .well-known for "+origin+": ", err)

	// No .well-known - assume the origin serves the client API itself
	url = fmt.Sprintf("%s://%s", scheme, h)
	logrus.Debug("Client API URL for " + origin + " is " + url + " (fallback)")
	return url, nil
}

func lookupWellKnownClient(baseUrl string, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}
	r, err := client.Get(util.MakeUrl(baseUrl, "/.well-known/matrix/client"))
	if r != nil {
		defer cleanup.DumpAndCloseStream(r.Body)
	}
	if err != nil {
		return "", err
	}
	if r.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status code %d", r.StatusCode)
	}

	decoder := json.NewDecoder(r.Body)
	wk := &wellknownClientResponse{}
	if err = decoder.Decode(&wk); err != nil {
		return "", err
	}
	if wk.Homeserver.BaseUrl == "" {
		return "", errors.New("no client api url advertised")
	}
	return strings.TrimSuffix(wk.Homeserver.BaseUrl, "/"), nil
}
