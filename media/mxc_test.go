package media

import (
	"errors"
	"testing"

	"github.com/nhhollander/matrix-media-client/common"
)

func TestParseContentURI(t *testing.T) {
	uri, err := ParseContentURI("mxc://example.org/abc123")
	if err != nil {
		t.Fatal(err)
	}
	if uri.Origin != "example.org" {
		t.Errorf("expected origin example.org, got %s", uri.Origin)
	}
	if uri.MediaId != "abc123" {
		t.Errorf("expected media id abc123, got %s", uri.MediaId)
	}
	if uri.String() != "mxc://example.org/abc123" {
		t.Errorf("unexpected round trip: %s", uri.String())
	}
}

func TestParseContentURIStripsQueryString(t *testing.T) {
	uri, err := ParseContentURI("mxc://example.org/abc123?width=96")
	if err != nil {
		t.Fatal(err)
	}
	if uri.MediaId != "abc123" {
		t.Errorf("expected media id abc123, got %s", uri.MediaId)
	}
}

func TestParseContentURIRejectsBadInput(t *testing.T) {
	bad := []string{
		"",
		"https://example.org/abc123",
		"mxc://example.org",
		"mxc://example.org/",
		"mxc:///abc123",
		"mxc://example.org/abc/def",
	}
	for _, s := range bad {
		if _, err := ParseContentURI(s); !errors.Is(err, common.ErrInvalidMxc) {
			t.Errorf("expected ErrInvalidMxc for %q, got %v", s, err)
		}
	}
}
