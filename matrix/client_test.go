package matrix

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/config"
	"github.com/nhhollander/matrix-media-client/common/rcontext"
	"github.com/nhhollander/matrix-media-client/errcache"
	"github.com/nhhollander/matrix-media-client/media"
)

func TestDownloadURL(t *testing.T) {
	config.AddHomeserverForTesting("url.example.org", "https://cs.example.org")

	client := NewClient("")
	urlStr, err := client.DownloadURL(media.ContentURI{Origin: "url.example.org", MediaId: "abc123"})
	if err != nil {
		t.Fatal(err)
	}
	expected := "https://cs.example.org/_matrix/media/v3/download/url.example.org/abc123?allow_redirect=true"
	if urlStr != expected {
		t.Errorf("expected %s, got %s", expected, urlStr)
	}
}

func TestThumbnailURL(t *testing.T) {
	config.AddHomeserverForTesting("thumb.example.org", "https://cs.example.org")

	client := NewClient("")
	uri := media.ContentURI{Origin: "thumb.example.org", MediaId: "abc123"}

	urlStr, err := client.ThumbnailURL(uri, 96, 64, "crop")
	if err != nil {
		t.Fatal(err)
	}
	expected := "https://cs.example.org/_matrix/media/v3/thumbnail/thumb.example.org/abc123?width=96&height=64&method=crop&allow_redirect=true"
	if urlStr != expected {
		t.Errorf("expected %s, got %s", expected, urlStr)
	}

	// Empty method defaults to scale
	urlStr, err = client.ThumbnailURL(uri, 32, 32, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "method=scale"; !strings.Contains(urlStr, want) {
		t.Errorf("expected %q in %s", want, urlStr)
	}

	if _, err = client.ThumbnailURL(uri, 32, 32, "stretch"); !errors.Is(err, common.ErrInvalidThumbnailMethod) {
		t.Errorf("expected ErrInvalidThumbnailMethod, got %v", err)
	}
	if _, err = client.ThumbnailURL(uri, 0, 32, "scale"); !errors.Is(err, common.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err = client.ThumbnailURL(uri, 32, -1, "scale"); !errors.Is(err, common.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="cat.png"`)
		_, _ = w.Write([]byte("not really a png"))
	}))
	defer srv.Close()
	config.AddHomeserverForTesting("fetch.example.org", srv.URL)

	client := NewClient("")
	uri := media.ContentURI{Origin: "fetch.example.org", MediaId: "abc123"}
	urlStr, err := client.DownloadURL(uri)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := client.Fetch(rcontext.Initial(), urlStr, uri.Origin)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.ContentType != "image/png" {
		t.Errorf("unexpected content type: %s", resp.ContentType)
	}
	if resp.Filename != "cat.png" {
		t.Errorf("unexpected filename: %s", resp.Filename)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "not really a png" {
		t.Errorf("unexpected body: %s", string(body))
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	config.AddHomeserverForTesting("missing.example.org", srv.URL)

	client := NewClient("")
	urlStr, err := client.DownloadURL(media.ContentURI{Origin: "missing.example.org", MediaId: "abc123"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Fetch(rcontext.Initial(), urlStr, "missing.example.org"); !errors.Is(err, common.ErrMediaNotFound) {
		t.Errorf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestFetchCachesFailures(t *testing.T) {
	config.AddHomeserverForTesting("flaky.example.org", "placeholder")
	errcache.Init()
	defer func() { errcache.DownloadErrors = nil }()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errcode":"M_UNKNOWN","error":"it broke"}`))
	}))
	defer srv.Close()

	client := NewClient("")
	urlStr := srv.URL + "/_matrix/media/v3/download/flaky.example.org/abc123"

	_, err := client.Fetch(rcontext.Initial(), urlStr, "flaky.example.org")
	if err == nil {
		t.Fatal("expected an error from the homeserver")
	}
	var mtxErr *errorResponse
	if !errors.As(err, &mtxErr) || mtxErr.ErrorCode != "M_UNKNOWN" {
		t.Errorf("expected an M_UNKNOWN error response, got %v", err)
	}

	if _, err := client.Fetch(rcontext.Initial(), urlStr, "flaky.example.org"); err == nil {
		t.Fatal("expected the cached error")
	}
	if requests != 1 {
		t.Errorf("expected the second fetch to be short-circuited, saw %d requests", requests)
	}
}

func TestFetchTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576000")
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()
	config.AddHomeserverForTesting("big.example.org", srv.URL)

	client := NewClient("")
	urlStr, err := client.DownloadURL(media.ContentURI{Origin: "big.example.org", MediaId: "abc123"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Fetch(rcontext.Initial(), urlStr, "big.example.org"); !errors.Is(err, common.ErrMediaTooLarge) {
		t.Errorf("expected ErrMediaTooLarge, got %v", err)
	}
}
