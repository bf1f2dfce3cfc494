package media

import (
	"io"

	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/rcontext"
	"github.com/pkg/errors"
)

// DownloadResponse is the result of fetching a piece of media from the
// homeserver. Callers own Body and must close it.
type DownloadResponse struct {
	Body          io.ReadCloser
	ContentType   string
	Filename      string
	ContentLength int64
}

// Client is the capability required to turn mxc references into fetchable
// HTTP URLs and to perform the fetches. Implemented by matrix.Client.
type Client interface {
	DownloadURL(uri ContentURI) (string, error)
	ThumbnailURL(uri ContentURI, width int, height int, method string) (string, error)
	Fetch(ctx rcontext.RequestContext, urlStr string, origin string) (*DownloadResponse, error)
}

// Media wraps a prepared pair of content references and derives URLs and
// download operations from them. Instances are immutable after
// construction: the thumbnail either exists for the whole lifetime or
// never does.
type Media struct {
	prepared PreparedMedia
	client   Client
	policy   RenderPolicy
}

type Option func(m *Media)

// WithRenderPolicy overrides the default allow-all render policy.
func WithRenderPolicy(policy RenderPolicy) Option {
	return func(m *Media) {
		m.policy = policy
	}
}

// FromContent builds a Media from (already decoded) event content.
func FromContent(client Client, content *EventContent, opts ...Option) (*Media, error) {
	prepared, err := PrepareContent(content)
	if err != nil {
		return nil, err
	}
	return FromPrepared(client, prepared, opts...), nil
}

// FromMxc builds a Media from a raw mxc URI. Equivalent to FromContent
// with a url-only content body.
func FromMxc(client Client, mxc string, opts ...Option) (*Media, error) {
	return FromContent(client, &EventContent{URL: mxc}, opts...)
}

func FromPrepared(client Client, prepared PreparedMedia, opts ...Option) *Media {
	m := &Media{
		prepared: prepared,
		client:   client,
		policy:   AllowAllPolicy,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Media) SrcMxc() ContentURI {
	return m.prepared.Source
}

func (m *Media) ThumbnailMxc() (ContentURI, bool) {
	if m.prepared.Thumbnail == nil {
		return ContentURI{}, false
	}
	return *m.prepared.Thumbnail, true
}

func (m *Media) HasThumbnail() bool {
	return m.prepared.Thumbnail != nil
}

// SrcHTTP resolves the source reference to a download URL.
func (m *Media) SrcHTTP() (string, error) {
	if m.client == nil {
		return "", common.ErrNoClient
	}
	return m.client.DownloadURL(m.prepared.Source)
}

// ThumbnailHTTP resolves the recorded thumbnail, if any, to a URL with the
// requested dimensions. The second return is false when no thumbnail was
// recorded. An empty method means "scale".
func (m *Media) ThumbnailHTTP(width int, height int, method string) (string, bool, error) {
	thumb, ok := m.ThumbnailMxc()
	if !ok {
		return "", false, nil
	}
	if m.client == nil {
		return "", true, common.ErrNoClient
	}
	urlStr, err := m.client.ThumbnailURL(thumb, width, height, method)
	return urlStr, true, err
}

// ThumbnailOfSourceHTTP resolves a server-generated thumbnail of the
// source media itself. Always defined, regardless of HasThumbnail.
func (m *Media) ThumbnailOfSourceHTTP(width int, height int, method string) (string, error) {
	if m.client == nil {
		return "", common.ErrNoClient
	}
	return m.client.ThumbnailURL(m.prepared.Source, width, height, method)
}

func (m *Media) DownloadSource(ctx rcontext.RequestContext) (*DownloadResponse, error) {
	urlStr, err := m.SrcHTTP()
	if err != nil {
		return nil, err
	}
	return m.client.Fetch(ctx, urlStr, m.prepared.Source.Origin)
}

// DownloadThumbnail fails with common.ErrNoThumbnail, before any network
// access, when no thumbnail was recorded.
func (m *Media) DownloadThumbnail(ctx rcontext.RequestContext, width int, height int, method string) (*DownloadResponse, error) {
	urlStr, ok, err := m.ThumbnailHTTP(width, height, method)
	if !ok {
		return nil, common.ErrNoThumbnail
	}
	if err != nil {
		return nil, err
	}
	thumb, _ := m.ThumbnailMxc()
	return m.client.Fetch(ctx, urlStr, thumb.Origin)
}

func (m *Media) DownloadThumbnailOfSource(ctx rcontext.RequestContext, width int, height int, method string) (*DownloadResponse, error) {
	urlStr, err := m.ThumbnailOfSourceHTTP(width, height, method)
	if err != nil {
		return nil, err
	}
	return m.client.Fetch(ctx, urlStr, m.prepared.Source.Origin)
}

// RenderMode asks the attached policy whether this media should be shown.
func (m *Media) RenderMode(ctx rcontext.RequestContext) (common.RenderMode, error) {
	mode, err := m.policy.RenderMode(ctx, m)
	if err != nil {
		return mode, err
	}
	for _, known := range common.AllRenderModes {
		if mode == known {
			return mode, nil
		}
	}
	return mode, errors.Errorf("policy returned unknown render mode %q", mode)
}
