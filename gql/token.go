package gql

import (
	"encoding/json"
	"fmt"

	"github.com/twitchlink/twitchlink/link"
)

type tokenResponse struct {
	Data struct {
		StreamPlaybackAccessToken *link.Token `json:"streamPlaybackAccessToken"`
		VideoPlaybackAccessToken  *link.Token `json:"videoPlaybackAccessToken"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ParseToken extracts the access token from a GraphQL response.
// Live mode reads data.streamPlaybackAccessToken, Vod mode data.videoPlaybackAccessToken.
// Every failure is a *link.ParseError wrapping the cause.
func ParseToken(data []byte, mode Mode) (link.Token, error) {
	var resp tokenResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return link.Token{}, &link.ParseError{Stage: link.StageToken, Err: err}
	}

	field, token := "streamPlaybackAccessToken", resp.Data.StreamPlaybackAccessToken
	if mode.IsVod {
		field, token = "videoPlaybackAccessToken", resp.Data.VideoPlaybackAccessToken
	}

	switch {
	case token == nil && len(resp.Errors) > 0:
		return link.Token{}, &link.ParseError{Stage: link.StageToken, Err: fmt.Errorf("graphql error: %s", resp.Errors[0].Message)}
	case token == nil:
		return link.Token{}, &link.ParseError{Stage: link.StageToken, Err: fmt.Errorf("missing data.%s", field)}
	case token.Value == "":
		return link.Token{}, &link.ParseError{Stage: link.StageToken, Err: fmt.Errorf("missing data.%s.value", field)}
	case token.Signature == "":
		return link.Token{}, &link.ParseError{Stage: link.StageToken, Err: fmt.Errorf("missing data.%s.signature", field)}
	}

	return *token, nil
}
