// Package inline resolves a batch of targets without any interaction and writes the links out.
package inline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/twitchlink/twitchlink/icon"
	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/log"
)

// Run resolves every target in order and writes each link to options.Out.
// The first failure stops the run.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	for _, target := range options.Targets {
		resolved, err := resolve(ctx, target, options)
		if err != nil {
			return err
		}

		if err := write(options.Out, resolved, options.Json); err != nil {
			return err
		}
	}

	return nil
}

func resolve(ctx context.Context, target link.Target, options *Options) (link.Link, error) {
	var (
		resolver Resolver
		symbol   icon.Icon
	)

	switch target.Kind {
	case link.KindStream:
		resolver, symbol = options.Streams, icon.Stream
	case link.KindVOD:
		resolver, symbol = options.VODs, icon.VOD
	default:
		return link.Link{}, fmt.Errorf("unknown target kind %q", target.Kind)
	}

	if resolver == nil {
		return link.Link{}, fmt.Errorf("no resolver for %s targets", target.Kind)
	}

	erase := options.Progress.OrElse(func(string) func() { return func() {} })(
		fmt.Sprintf("%s Resolving %s %s...", icon.Get(symbol), target.Kind, target.Value),
	)
	defer erase()

	log.WithFields(log.Fields{"kind": target.Kind, "target": target.Value}).Info("Resolving")
	return resolver.Resolve(ctx, target.Value)
}

func write(out io.Writer, l link.Link, asJson bool) error {
	if asJson {
		return json.NewEncoder(out).Encode(l)
	}

	_, err := fmt.Fprintln(out, l.String())
	return err
}
