package util

import (
	"testing"
)

func TestMakeUrl(t *testing.T) {
	cases := []struct {
		parts    []string
		expected string
	}{
		{[]string{"https://example.org", "/path"}, "https://example.org/path"},
		{[]string{"https://example.org/", "/path"}, "https://example.org/path"},
		{[]string{"https://example.org/", "path"}, "https://example.org/path"},
		{[]string{"https://example.org", "path", "more"}, "https://example.org/path/more"},
		{[]string{"https://example.org", "", "path"}, "https://example.org/path"},
	}
	for _, c := range cases {
		if actual := MakeUrl(c.parts...); actual != c.expected {
			t.Errorf("expected %s, got %s", c.expected, actual)
		}
	}
}
