package media

import (
	"strings"

	"github.com/nhhollander/matrix-media-client/common"
	"github.com/pkg/errors"
)

// ContentURI is a parsed mxc URI (mxc://origin/mediaId). The zero value is
// not a valid reference.
type ContentURI struct {
	Origin  string
	MediaId string
}

func ParseContentURI(mxc string) (ContentURI, error) {
	if strings.Index(mxc, "mxc://") != 0 {
		return ContentURI{}, errors.Wrap(common.ErrInvalidMxc, "missing protocol")
	}

	mxc = mxc[6:]                    // remove protocol
	mxc = strings.Split(mxc, "?")[0] // take off any query string

	parts := strings.Split(mxc, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ContentURI{}, errors.Wrap(common.ErrInvalidMxc, "not in the format of mxc://origin/media_id")
	}

	return ContentURI{Origin: parts[0], MediaId: parts[1]}, nil
}

func (u ContentURI) String() string {
	return "mxc://" + u.Origin + "/" + u.MediaId
}

func (u ContentURI) IsEmpty() bool {
	return u.Origin == "" && u.MediaId == ""
}
