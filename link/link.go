// Package link defines the domain models shared by the stream and VOD resolvers.
package link

import "fmt"

// Kind distinguishes a live stream from a past broadcast.
type Kind string

const (
	KindStream Kind = "stream"
	KindVOD    Kind = "vod"
)

// Token is a signed playback access token. It is short-lived and used once.
type Token struct {
	Value     string `json:"value"`
	Signature string `json:"signature"`
}

// Link is a resolved manifest location.
type Link struct {
	// Kind of the resolved target.
	Kind Kind `json:"kind"`
	// Target is the channel name or VOD id that was resolved.
	Target string `json:"target"`
	// URL of the HLS manifest.
	URL string `json:"url"`
	// Host is the CDN base URL that answered. Empty for streams.
	Host string `json:"host,omitempty"`
	// Manifest is the raw master playlist. Only set for streams.
	Manifest string `json:"manifest,omitempty"`
}

// String returns the line printed for the link in plain output.
func (l Link) String() string {
	if l.Kind == KindVOD {
		return fmt.Sprintf("VOD: %s", l.URL)
	}
	return l.Manifest
}
