// Package helix provides a client for the public Helix video metadata endpoint.
package helix

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/network"
)

// VideosEndpoint lists videos by id.
const VideosEndpoint = "https://api.twitch.tv/helix/videos"

// Credentials authenticate Helix requests.
type Credentials struct {
	ClientID   string
	OAuthToken string
}

// Authorization returns the Authorization header value.
// A bare token is sent as a bearer token.
func (c Credentials) Authorization() string {
	token := strings.TrimSpace(c.OAuthToken)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") || strings.HasPrefix(strings.ToLower(token), "oauth ") {
		return token
	}
	return "Bearer " + token
}

// Valid reports whether both halves are present.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.ClientID) != "" && strings.TrimSpace(c.OAuthToken) != ""
}

// String never prints the token.
func (c Credentials) String() string {
	if c.OAuthToken == "" {
		return "client_id=" + c.ClientID + " token=<unset>"
	}
	return "client_id=" + c.ClientID + " token=<redacted>"
}

// Client fetches video metadata.
type Client struct {
	Doer        network.Doer
	Endpoint    string
	Credentials Credentials
}

// New returns a Client using the public endpoint.
func New(doer network.Doer, creds Credentials) *Client {
	return &Client{
		Doer:        doer,
		Endpoint:    VideosEndpoint,
		Credentials: creds,
	}
}

// Video returns the single video record with the given id.
func (c *Client) Video(ctx context.Context, id string) (Video, error) {
	if id == "" {
		return Video{}, &link.ShapeError{Stage: link.StageMetadata, Reason: "video id is empty"}
	}

	req, err := http.NewRequest(http.MethodGet, c.Endpoint+"?id="+url.QueryEscape(id), nil)
	if err != nil {
		return Video{}, link.WrapTransport(link.StageMetadata, c.Endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", c.Credentials.ClientID)
	req.Header.Set("Authorization", c.Credentials.Authorization())

	log.Infof("Fetching helix metadata for video %s", id)
	data, err := network.Fetch(ctx, c.Doer, req)
	if err != nil {
		log.Error(err)
		return Video{}, link.WrapTransport(link.StageMetadata, c.Endpoint, err)
	}

	video, err := DecodeVideo(data, id)
	if err != nil {
		log.Error(err)
		return Video{}, err
	}

	log.WithFields(log.Fields{"id": video.ID, "user": video.UserLogin, "type": video.Type}).Info("Got helix metadata")
	return video, nil
}
