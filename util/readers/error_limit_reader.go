package readers

import (
	"io"

	"github.com/nhhollander/matrix-media-client/common"
)

// LimitReaderWithOverrunError works like io.LimitReader except it raises
// common.ErrMediaTooLarge when the stream is longer than n bytes instead
// of silently truncating it.
func LimitReaderWithOverrunError(r io.ReadCloser, n int64) io.ReadCloser {
	return &limitedReader{r: r, n: n}
}

type limitedReader struct {
	r io.ReadCloser
	n int64
}

func (r *limitedReader) Read(p []byte) (int, error) {
	if r.n <= 0 {
		// See if we can read one more byte, indicating the stream is too big
		b := make([]byte, 1)
		n, err := r.r.Read(b)
		if n > 0 {
			p[0] = b[0]
			return n, common.ErrMediaTooLarge
		}
		if err != nil {
			// ignore - we're at the end anyways
			return n, io.EOF
		}

		return n, io.EOF
	}

	if int64(len(p)) > r.n {
		p = p[0:r.n]
	}
	n, err := r.r.Read(p)
	r.n -= int64(n)
	return n, err
}

func (r *limitedReader) Close() error {
	return r.r.Close()
}
