// Package gql exchanges a channel login or video id for a playback access token
// through the platform's private GraphQL endpoint.
package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/network"
)

const (
	// Endpoint is the GraphQL endpoint used by the web player.
	Endpoint = "https://gql.twitch.tv/gql"

	// DefaultClientID is the web player's public client id.
	// User-registered client ids are rejected by this endpoint.
	DefaultClientID = "kimne78kx3ncx6brgo4mv6wki5h1ko"

	// DefaultPersistedQueryHash identifies the PlaybackAccessToken operation.
	DefaultPersistedQueryHash = "0828119ded1c13477966434e15800ff57ddacf13ba1911c129dc2200705b0712"

	DefaultPlayerType = "channel_home_live"

	operationName = "PlaybackAccessToken"
)

// Mode selects which token the query asks for.
type Mode struct {
	IsLive bool
	IsVod  bool
}

var (
	// Live requests a stream token for a channel login.
	Live = Mode{IsLive: true}
	// Vod requests a video token for a VOD id.
	Vod = Mode{IsVod: true}
)

// Resolver fetches playback access tokens.
type Resolver struct {
	Doer       network.Doer
	Endpoint   string
	ClientID   string
	QueryHash  string
	PlayerType string
}

// New returns a Resolver with the default endpoint and persisted query.
func New(doer network.Doer) *Resolver {
	return &Resolver{
		Doer:       doer,
		Endpoint:   Endpoint,
		ClientID:   DefaultClientID,
		QueryHash:  DefaultPersistedQueryHash,
		PlayerType: DefaultPlayerType,
	}
}

type variables struct {
	IsLive     bool   `json:"isLive"`
	Login      string `json:"login"`
	IsVod      bool   `json:"isVod"`
	VodID      string `json:"vodID"`
	PlayerType string `json:"playerType"`
}

type persistedQuery struct {
	Version    int    `json:"version"`
	Sha256Hash string `json:"sha256Hash"`
}

type request struct {
	OperationName string    `json:"operationName"`
	Variables     variables `json:"variables"`
	Extensions    struct {
		PersistedQuery persistedQuery `json:"persistedQuery"`
	} `json:"extensions"`
}

// Body builds the JSON payload of the token request.
// In Live mode login is the channel name; in Vod mode it is the video id.
func (r *Resolver) Body(login string, mode Mode) ([]byte, error) {
	req := request{
		OperationName: operationName,
		Variables: variables{
			IsLive:     mode.IsLive,
			IsVod:      mode.IsVod,
			PlayerType: r.PlayerType,
		},
	}
	req.Extensions.PersistedQuery = persistedQuery{Version: 1, Sha256Hash: r.QueryHash}

	if mode.IsVod {
		req.Variables.VodID = login
	} else {
		req.Variables.Login = login
	}

	return json.Marshal(req)
}

// Token returns a playback access token for login.
func (r *Resolver) Token(ctx context.Context, login string, mode Mode) (link.Token, error) {
	if login == "" {
		return link.Token{}, &link.ShapeError{Stage: link.StageToken, Reason: "login is empty"}
	}

	body, err := r.Body(login, mode)
	if err != nil {
		return link.Token{}, err
	}

	req, err := http.NewRequest(http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return link.Token{}, link.WrapTransport(link.StageToken, r.Endpoint, err)
	}
	req.Header.Set("Client-Id", r.ClientID)
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")

	log.WithFields(log.Fields{"login": login, "live": mode.IsLive, "vod": mode.IsVod}).Info("Requesting playback access token")
	data, err := network.Fetch(ctx, r.Doer, req)
	if err != nil {
		return link.Token{}, link.WrapTransport(link.StageToken, r.Endpoint, err)
	}

	token, err := ParseToken(data, mode)
	if err != nil {
		log.Error(err)
		return link.Token{}, err
	}

	log.Debugf("Got playback access token for %s", login)
	return token, nil
}
