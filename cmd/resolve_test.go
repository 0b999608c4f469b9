package cmd

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/gql"
	"github.com/twitchlink/twitchlink/inline"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/link"
	"github.com/twitchlink/twitchlink/vod"
)

func TestWiring(t *testing.T) {
	Convey("Given a fresh configuration", t, func() {
		viper.Reset()

		Convey("The prober falls back to the built-in defaults", func() {
			prober := newProber()
			So(prober.Hosts, ShouldResemble, vod.DefaultHosts)
			So(prober.Quality, ShouldEqual, vod.DefaultQuality)
			So(prober.Parallelism, ShouldEqual, 1)
			So(prober.Timeout, ShouldEqual, vod.DefaultProbeTimeout)
		})

		Convey("The prober follows the configuration", func() {
			viper.Set(key.VODHosts, []string{"https://a.example", "https://b.example"})
			viper.Set(key.VODQuality, "720p60")
			viper.Set(key.VODParallelism, 16)
			viper.Set(key.VODProbeTimeout, "2s")

			prober := newProber()
			So(prober.Hosts, ShouldHaveLength, 2)
			So(prober.Quality, ShouldEqual, "720p60")
			So(prober.Parallelism, ShouldEqual, 2)
			So(prober.Timeout, ShouldEqual, 2*time.Second)
		})

		Convey("Hosts from the file or the environment lose trailing slashes", func() {
			viper.Set(key.VODHosts, []string{"https://a.example/", " https://b.example// ", ""})

			prober := newProber()
			So(prober.Hosts, ShouldResemble, []string{"https://a.example", "https://b.example"})
			So(vod.ManifestURL(prober.Hosts[0], "sid", prober.Quality), ShouldEqual, "https://a.example/sid/chunked/index-dvr.m3u8")
		})

		Convey("The token resolver keeps the web player defaults unless overridden", func() {
			tokens := newTokenResolver()
			So(tokens.ClientID, ShouldEqual, gql.DefaultClientID)

			viper.Set(key.GQLPlayerType, "site")
			So(newTokenResolver().PlayerType, ShouldEqual, "site")
		})

		Convey("Only the resolvers needed by the targets are built", func() {
			options := &inline.Options{Targets: []link.Target{{Kind: link.KindStream, Value: "chan"}}}
			So(wire(options), ShouldBeNil)
			So(options.Streams, ShouldNotBeNil)
			So(options.VODs, ShouldBeNil)
		})
	})
}
