package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var MediaDownloaded = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "media_client_downloads_total",
}, []string{"origin"})
var ThumbnailsRequested = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "media_client_thumbnails_requested_total",
}, []string{"origin", "method"})
var HttpResponseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "media_client_http_response_time_seconds",
}, []string{"origin"})
var CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "media_client_cache_hits_total",
}, []string{"cache"})
var CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "media_client_cache_misses_total",
}, []string{"cache"})

func init() {
	prometheus.MustRegister(MediaDownloaded)
	prometheus.MustRegister(ThumbnailsRequested)
	prometheus.MustRegister(HttpResponseTime)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}
