package media

import (
	"github.com/pkg/errors"
)

// EncryptedFile is the `file` / `thumbnail_file` wrapper found in encrypted
// room events. Only the referenced URI matters here - the keys stay with
// the caller, which is responsible for decrypting whatever it downloads.
type EncryptedFile struct {
	URL string `json:"url"`
}

type FileInfo struct {
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	ThumbnailFile *EncryptedFile `json:"thumbnail_file,omitempty"`
	MimeType      string         `json:"mimetype,omitempty"`
	SizeBytes     int64          `json:"size,omitempty"`
}

// EventContent is the media-relevant subset of an m.room.message (or
// similar) event's content.
type EventContent struct {
	URL  string         `json:"url,omitempty"`
	File *EncryptedFile `json:"file,omitempty"`
	Info *FileInfo      `json:"info,omitempty"`
}

// PreparedMedia is the normalized pair of references extracted from event
// content. Thumbnail is nil when the event carried none.
type PreparedMedia struct {
	Source    ContentURI
	Thumbnail *ContentURI
}

// PrepareContent normalizes the different shapes event content can take:
// a plain `url`, an encrypted `file.url`, and the matching thumbnail
// variants under `info`. The encrypted form wins when both are present,
// mirroring how clients treat encrypted events.
func PrepareContent(content *EventContent) (PreparedMedia, error) {
	if content == nil {
		return PreparedMedia{}, errors.New("no event content to prepare")
	}

	src := content.URL
	if content.File != nil && content.File.URL != "" {
		src = content.File.URL
	}
	if src == "" {
		return PreparedMedia{}, errors.New("event content does not reference any media")
	}

	sourceUri, err := ParseContentURI(src)
	if err != nil {
		return PreparedMedia{}, err
	}
	prepared := PreparedMedia{Source: sourceUri}

	thumb := ""
	if content.Info != nil {
		thumb = content.Info.ThumbnailURL
		if content.Info.ThumbnailFile != nil && content.Info.ThumbnailFile.URL != "" {
			thumb = content.Info.ThumbnailFile.URL
		}
	}
	if thumb != "" {
		thumbUri, err := ParseContentURI(thumb)
		if err != nil {
			return PreparedMedia{}, err
		}
		prepared.Thumbnail = &thumbUri
	}

	return prepared, nil
}
