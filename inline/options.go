package inline

import (
	"context"
	"io"

	"github.com/samber/mo"
	"github.com/twitchlink/twitchlink/link"
)

// Resolver turns one target value into a link.
// *stream.Resolver and *vod.Resolver satisfy it.
type Resolver interface {
	Resolve(ctx context.Context, value string) (link.Link, error)
}

// ProgressFunc shows msg and returns a function that hides it again.
type ProgressFunc func(msg string) (erase func())

type Options struct {
	Out      io.Writer
	Json     bool
	Targets  []link.Target
	Streams  Resolver
	VODs     Resolver
	Progress mo.Option[ProgressFunc]
}

// ParseTargets orders the targets of a run: the stream flag, then the VOD
// flag, then positional arguments as given.
func ParseTargets(stream, vod mo.Option[string], args []string) ([]link.Target, error) {
	var targets []link.Target

	if channel, ok := stream.Get(); ok {
		targets = append(targets, link.Target{Kind: link.KindStream, Value: channel})
	}

	if id, ok := vod.Get(); ok {
		target, err := link.ParseTarget(id)
		if err != nil {
			return nil, err
		}
		if target.Kind != link.KindVOD {
			return nil, &link.ShapeError{Stage: link.StageMetadata, Value: id, Reason: "not a VOD id"}
		}
		targets = append(targets, target)
	}

	for _, arg := range args {
		target, err := link.ParseTarget(arg)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	return targets, nil
}

// Has reports whether any target is of kind.
func (o *Options) Has(kind link.Kind) bool {
	for _, t := range o.Targets {
		if t.Kind == kind {
			return true
		}
	}
	return false
}
