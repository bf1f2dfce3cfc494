package readers

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/nhhollander/matrix-media-client/common"
)

func TestLimitReaderUnderLimit(t *testing.T) {
	r := LimitReaderWithOverrunError(io.NopCloser(bytes.NewReader([]byte("hello"))), 10)
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("unexpected contents: %s", string(b))
	}
}

func TestLimitReaderExactLimit(t *testing.T) {
	r := LimitReaderWithOverrunError(io.NopCloser(bytes.NewReader([]byte("hello"))), 5)
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("unexpected contents: %s", string(b))
	}
}

func TestLimitReaderOverrun(t *testing.T) {
	r := LimitReaderWithOverrunError(io.NopCloser(bytes.NewReader([]byte("hello world"))), 5)
	_, err := io.ReadAll(r)
	if !errors.Is(err, common.ErrMediaTooLarge) {
		t.Errorf("expected ErrMediaTooLarge, got %v", err)
	}
}
