// Package stream resolves the live HLS master playlist of a channel.
package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/twitchlink/twitchlink/gql"
	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/network"
)

// UsherBase serves live master playlists.
const UsherBase = "https://usher.ttvnw.net"

// TokenSource returns playback access tokens. *gql.Resolver satisfies it.
type TokenSource interface {
	Token(ctx context.Context, login string, mode gql.Mode) (link.Token, error)
}

// Resolver fetches live manifests.
type Resolver struct {
	Tokens    TokenSource
	Doer      network.Doer
	UsherBase string
}

// NewResolver returns a Resolver against UsherBase.
func NewResolver(tokens TokenSource, doer network.Doer) *Resolver {
	return &Resolver{Tokens: tokens, Doer: doer, UsherBase: UsherBase}
}

// ManifestURL builds the usher URL for channel signed with token.
func ManifestURL(base, channel string, token link.Token) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("/api/channel/hls/")
	b.WriteString(url.PathEscape(channel))
	b.WriteString(".m3u8?sig=")
	b.WriteString(url.QueryEscape(token.Signature))
	b.WriteString("&token=")
	b.WriteString(url.QueryEscape(token.Value))
	b.WriteString("&allow_source=true&allow_audio_only=true")
	return b.String()
}

// Resolve returns the live master playlist of channel.
func (r *Resolver) Resolve(ctx context.Context, channel string) (link.Link, error) {
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel == "" {
		return link.Link{}, &link.ShapeError{Stage: link.StageToken, Reason: "channel name is empty"}
	}

	token, err := r.Tokens.Token(ctx, channel, gql.Live)
	if err != nil {
		return link.Link{}, fmt.Errorf("stream %s: %w", channel, err)
	}

	manifestURL := ManifestURL(r.UsherBase, channel, token)
	req, err := http.NewRequest(http.MethodGet, manifestURL, nil)
	if err != nil {
		return link.Link{}, fmt.Errorf("stream %s: %w", channel, link.WrapTransport(link.StageManifest, network.Redact(manifestURL), err))
	}

	log.WithFields(log.Fields{"channel": channel}).Info("Fetching live manifest")
	body, err := network.Fetch(ctx, r.Doer, req)
	if err != nil {
		return link.Link{}, fmt.Errorf("stream %s: %w", channel, link.WrapTransport(link.StageManifest, network.Redact(manifestURL), err))
	}

	return link.Link{
		Kind:     link.KindStream,
		Target:   channel,
		URL:      manifestURL,
		Manifest: string(body),
	}, nil
}
