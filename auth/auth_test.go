package auth

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/filesystem"
	"github.com/twitchlink/twitchlink/helix"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/where"
	"github.com/zalando/go-keyring"
)

func writeSecrets(body string) {
	So(filesystem.API().WriteFile(where.Secrets(), []byte(body), 0o600), ShouldBeNil)
}

func TestLoad(t *testing.T) {
	Convey("Given empty credential sources", t, func() {
		keyring.MockInit()
		filesystem.SetMemMapFs()
		viper.Reset()

		Convey("Load reports missing credentials", func() {
			_, err := Load()
			So(errors.Is(err, ErrMissing), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "auth login")
		})

		Convey("The legacy secrets file is read", func() {
			writeSecrets(`{"client_id":"fileid","client_secret":"unused","oauth_token":"filetoken"}`)

			creds, err := Load()
			So(err, ShouldBeNil)
			So(creds, ShouldResemble, helix.Credentials{ClientID: "fileid", OAuthToken: "filetoken"})
		})

		Convey("A corrupt secrets file is an error", func() {
			writeSecrets(`{"client_id":`)

			_, err := Load()
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrMissing), ShouldBeFalse)
		})

		Convey("The keyring wins over the secrets file", func() {
			writeSecrets(`{"client_id":"fileid","oauth_token":"filetoken"}`)
			So(Save(helix.Credentials{ClientID: "ringid", OAuthToken: "ringtoken"}), ShouldBeNil)

			status, err := Lookup()
			So(err, ShouldBeNil)
			So(status.Credentials.ClientID, ShouldEqual, "ringid")
			So(status.ClientID, ShouldEqual, SourceKeyring)
			So(status.OAuthToken, ShouldEqual, SourceKeyring)

			Convey("And configuration wins over the keyring, half by half", func() {
				viper.Set(key.TwitchOAuthToken, "configtoken")

				status, err := Lookup()
				So(err, ShouldBeNil)
				So(status.Credentials, ShouldResemble, helix.Credentials{ClientID: "ringid", OAuthToken: "configtoken"})
				So(status.ClientID, ShouldEqual, SourceKeyring)
				So(status.OAuthToken, ShouldEqual, SourceConfig)
			})

			Convey("And Delete falls back to the secrets file", func() {
				So(Delete(), ShouldBeNil)
				So(Delete(), ShouldBeNil)

				status, err := Lookup()
				So(err, ShouldBeNil)
				So(status.ClientID, ShouldEqual, SourceSecrets)
			})
		})

		Convey("A lone half is not enough", func() {
			viper.Set(key.TwitchClientID, "configid")

			status, err := Lookup()
			So(err, ShouldBeNil)
			So(status.ClientID, ShouldEqual, SourceConfig)
			So(status.OAuthToken, ShouldEqual, SourceNone)

			_, err = Load()
			So(errors.Is(err, ErrMissing), ShouldBeTrue)
		})
	})
}
