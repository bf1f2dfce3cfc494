package common

import (
	"errors"
)

var ErrInvalidMxc = errors.New("invalid mxc uri")
var ErrNoThumbnail = errors.New("media has no thumbnail")
var ErrNoClient = errors.New("no client capability available")
var ErrMediaNotFound = errors.New("media not found")
var ErrMediaTooLarge = errors.New("media too large")
var ErrInvalidDimensions = errors.New("invalid thumbnail dimensions")
var ErrInvalidThumbnailMethod = errors.New("invalid thumbnail method")
var ErrHostNotFound = errors.New("host not found")
