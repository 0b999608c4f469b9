package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/filesystem"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/vod"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetStringSlice(key.VODHosts), ShouldResemble, vod.DefaultHosts)
			So(viper.GetInt(key.VODParallelism), ShouldEqual, 1)
			So(viper.GetDuration(key.VODProbeTimeout).Seconds(), ShouldEqual, 10)
		})

		Convey("Should register every defined key exactly once", func() {
			So(Default, ShouldHaveLength, key.DefinedFieldsCount)
			So(EnvExposed, ShouldHaveLength, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("vod.probe_timeout")
			So(result, ShouldEqual, "vod_probe_timeout")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.TwitchClientID]

		Convey("Env should be prefixed with the app name", func() {
			So(field.Env(), ShouldEqual, "TWITCHLINK_TWITCH_CLIENT_ID")
		})

		Convey("MarshalJSON should report the type", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"string"`)
		})

		Convey("Hosts should be typed as a string slice", func() {
			hosts := Default[key.VODHosts]
			So(hosts.typeName(), ShouldEqual, "[]string")
		})
	})
}

func TestSecrets(t *testing.T) {
	Convey("Given an OAuth token in the config", t, func() {
		viper.Set(key.TwitchOAuthToken, "supersecrettoken")
		Reset(func() { viper.Set(key.TwitchOAuthToken, "") })

		field := Default[key.TwitchOAuthToken]

		Convey("Get should mask it", func() {
			So(Get(key.TwitchOAuthToken), ShouldEqual, Redacted)
		})

		Convey("Pretty should not print it", func() {
			So(field.Pretty(), ShouldNotContainSubstring, "supersecrettoken")
			So(field.Pretty(), ShouldContainSubstring, Redacted)
		})

		Convey("MarshalJSON should not print it", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldNotContainSubstring, "supersecrettoken")
			So(string(data), ShouldContainSubstring, `"value":"\u003credacted\u003e"`)
		})

		Convey("Other keys should be printed as is", func() {
			viper.Set(key.TwitchClientID, "abc")
			Reset(func() { viper.Set(key.TwitchClientID, "") })
			So(Get(key.TwitchClientID), ShouldEqual, "abc")
		})
	})

	Convey("Given an empty OAuth token", t, func() {
		viper.Set(key.TwitchOAuthToken, "")
		So(Get(key.TwitchOAuthToken), ShouldEqual, "")
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Converts to the field type", func() {
			v, err := Parse(key.VODParallelism, []string{"4"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 4)

			v, err = Parse(key.NetworkImpersonate, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			v, err = Parse(key.VODQuality, []string{"720p60"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "720p60")
		})

		Convey("Splits host lists and trims trailing slashes", func() {
			v, err := Parse(key.VODHosts, []string{"https://a.example/, https://b.example", "https://c.example"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"https://a.example", "https://b.example", "https://c.example"})
		})

		Convey("Rejects invalid values", func() {
			for _, tc := range []struct {
				key   string
				value string
			}{
				{key.VODParallelism, "0"},
				{key.VODParallelism, "many"},
				{key.VODProbeTimeout, "soon"},
				{key.NetworkTimeout, "-1s"},
				{key.LogsWrite, "maybe"},
			} {
				_, err := Parse(tc.key, []string{tc.value})
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Rejects unknown keys and missing values", func() {
			_, err := Parse("vod.hostz", []string{"x"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.VODQuality, nil)
			So(err, ShouldNotBeNil)
		})
	})
}
