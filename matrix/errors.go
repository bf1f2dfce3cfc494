package matrix

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nhhollander/matrix-media-client/util/cleanup"
)

type errorResponse struct {
	ErrorCode string `json:"errcode"`
	Message   string `json:"error"`
}

func (e *errorResponse) Error() string {
	return fmt.Sprintf("code=%s message=%s", e.ErrorCode, e.Message)
}

func decodeErrorBody(res *http.Response, out *errorResponse) error {
	defer cleanup.DumpAndCloseStream(res.Body)
	contents, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(contents, out)
}

type wellknownClientResponse struct {
	Homeserver struct {
		BaseUrl string `json:"base_url"`
	} `json:"m.homeserver"`
}
