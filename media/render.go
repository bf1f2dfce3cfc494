package media

import (
	"time"

	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/rcontext"
	"github.com/nhhollander/matrix-media-client/metrics"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	typedsf "github.com/t2bot/go-typed-singleflight"
)

// RenderPolicy decides whether a given Media should be shown or blocked.
// Policies may consult external services (contact lists, moderation
// state) - wrap them in a CachedPolicy when they do.
type RenderPolicy interface {
	RenderMode(ctx rcontext.RequestContext, m *Media) (common.RenderMode, error)
}

type allowAllPolicy struct {
}

func (allowAllPolicy) RenderMode(ctx rcontext.RequestContext, m *Media) (common.RenderMode, error) {
	return common.RenderModeNormal, nil
}

// AllowAllPolicy renders everything normally. The default for every Media
// unless WithRenderPolicy says otherwise.
var AllowAllPolicy RenderPolicy = allowAllPolicy{}

// CachedPolicy memoizes another policy's decisions per source mxc, with
// concurrent lookups for the same media collapsed into one upstream call.
type CachedPolicy struct {
	inner RenderPolicy
	cache *cache.Cache
	sf    *typedsf.Group[common.RenderMode]
}

func NewCachedPolicy(inner RenderPolicy, expiration time.Duration) *CachedPolicy {
	return &CachedPolicy{
		inner: inner,
		cache: cache.New(expiration, expiration*2),
		sf:    new(typedsf.Group[common.RenderMode]),
	}
}

func (p *CachedPolicy) RenderMode(ctx rcontext.RequestContext, m *Media) (common.RenderMode, error) {
	key := m.SrcMxc().String()
	if v, ok := p.cache.Get(key); ok {
		metrics.CacheHits.With(prometheus.Labels{"cache": "render_modes"}).Inc()
		return v.(common.RenderMode), nil
	}
	metrics.CacheMisses.With(prometheus.Labels{"cache": "render_modes"}).Inc()

	mode, err, _ := p.sf.Do(key, func() (common.RenderMode, error) {
		mode, err := p.inner.RenderMode(ctx, m)
		if err != nil {
			return "", err
		}
		p.cache.Set(key, mode, cache.DefaultExpiration)
		return mode, nil
	})
	return mode, err
}

// Forget drops the cached decision for a reference, forcing the next
// lookup through to the inner policy.
func (p *CachedPolicy) Forget(uri ContentURI) {
	p.cache.Delete(uri.String())
}
