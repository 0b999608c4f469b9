package vod

import (
	"context"
	"fmt"

	"github.com/twitchlink/twitchlink/helix"
	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/log"
)

// VideoSource returns video metadata by id. *helix.Client satisfies it.
type VideoSource interface {
	Video(ctx context.Context, id string) (helix.Video, error)
}

// Resolver turns a VOD id into its manifest URL.
// It holds no state between calls.
type Resolver struct {
	Videos VideoSource
	Prober *Prober
}

// NewResolver returns a Resolver.
func NewResolver(videos VideoSource, prober *Prober) *Resolver {
	return &Resolver{Videos: videos, Prober: prober}
}

// Resolve fetches the metadata of the VOD, derives its storage id from the
// thumbnail URL and returns the first CDN candidate that serves the manifest.
func (r *Resolver) Resolve(ctx context.Context, id string) (link.Link, error) {
	video, err := r.Videos.Video(ctx, id)
	if err != nil {
		return link.Link{}, fmt.Errorf("vod %s: %w", id, err)
	}

	storageID, err := StorageID(video.ThumbnailURL)
	if err != nil {
		return link.Link{}, fmt.Errorf("vod %s: %w", id, err)
	}
	log.Infof("Storage id of vod %s is %s", id, storageID)

	hit, err := r.Prober.Probe(ctx, storageID)
	if err != nil {
		return link.Link{}, fmt.Errorf("vod %s: %w", id, err)
	}

	return link.Link{
		Kind:   link.KindVOD,
		Target: id,
		URL:    hit.URL,
		Host:   hit.Host,
	}, nil
}
