package helix

import (
	"encoding/json"
	"fmt"

	"github.com/twitchlink/twitchlink/link"
)

// Video is a single Helix video record.
type Video struct {
	ID           string `json:"id"`
	StreamID     string `json:"stream_id"`
	UserID       string `json:"user_id"`
	UserLogin    string `json:"user_login"`
	UserName     string `json:"user_name"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Viewable     string `json:"viewable"`
	Type         string `json:"type"`
	Duration     string `json:"duration"`
	CreatedAt    string `json:"created_at"`
}

type videosResponse struct {
	Data *[]Video `json:"data"`
}

// DecodeVideo decodes a Helix videos response that must hold exactly one record.
// id is only used to annotate errors.
func DecodeVideo(data []byte, id string) (Video, error) {
	var resp videosResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Video{}, &link.ParseError{Stage: link.StageMetadata, Err: err}
	}

	if resp.Data == nil {
		return Video{}, &link.ShapeError{Stage: link.StageMetadata, Value: id, Reason: "unexpected response shape: no data list"}
	}

	if n := len(*resp.Data); n != 1 {
		return Video{}, &link.ShapeError{Stage: link.StageMetadata, Value: id, Reason: fmt.Sprintf("unexpected response shape: %d records, want 1", n)}
	}

	return (*resp.Data)[0], nil
}
