package cmd

import (
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/auth"
	"github.com/twitchlink/twitchlink/gql"
	"github.com/twitchlink/twitchlink/helix"
	"github.com/twitchlink/twitchlink/inline"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/network"
	"github.com/twitchlink/twitchlink/stream"
	"github.com/twitchlink/twitchlink/util"
	"github.com/twitchlink/twitchlink/vod"
)

// wire builds the resolvers needed by the targets of options.
// Credentials are only loaded when a VOD is requested.
func wire(options *inline.Options) error {
	if options.Has(link.KindStream) {
		options.Streams = stream.NewResolver(newTokenResolver(), network.Client)
	}

	if options.Has(link.KindVOD) {
		creds, err := auth.Load()
		if errors.Is(err, auth.ErrMissing) {
			printMissingCredentials()
		}
		if err != nil {
			return err
		}

		options.VODs = vod.NewResolver(helix.New(network.Client, creds), newProber())
	}

	return nil
}

func newTokenResolver() *gql.Resolver {
	tokens := gql.New(network.Client)
	if id := viper.GetString(key.GQLClientID); id != "" {
		tokens.ClientID = id
	}
	if hash := viper.GetString(key.GQLPersistedQueryHash); hash != "" {
		tokens.QueryHash = hash
	}
	if playerType := viper.GetString(key.GQLPlayerType); playerType != "" {
		tokens.PlayerType = playerType
	}
	return tokens
}

func newProber() *vod.Prober {
	prober := vod.NewProber(network.Client)

	// The file and the environment bypass config.Parse.
	hosts := lo.FilterMap(viper.GetStringSlice(key.VODHosts), func(host string, _ int) (string, bool) {
		host = strings.TrimRight(strings.TrimSpace(host), "/")
		return host, host != ""
	})
	if len(hosts) > 0 {
		prober.Hosts = hosts
	}
	if quality := viper.GetString(key.VODQuality); quality != "" {
		prober.Quality = quality
	}
	if timeout := viper.GetDuration(key.VODProbeTimeout); timeout > 0 {
		prober.Timeout = timeout
	}

	prober.Parallelism = util.Clamp(viper.GetInt(key.VODParallelism), 1, util.Max(len(prober.Hosts), 1))
	return prober
}
