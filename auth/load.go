package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/filesystem"
	"github.com/twitchlink/twitchlink/helix"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/where"
)

// Source tells where a credential was found.
type Source string

const (
	SourceNone    Source = "none"
	SourceConfig  Source = "config"
	SourceKeyring Source = "keyring"
	SourceSecrets Source = "secrets file"
)

// ErrMissing is returned by Load when no complete pair of credentials exists.
var ErrMissing = fmt.Errorf("twitch credentials are missing, run `%s auth login`", constant.App)

// secrets is the layout of the legacy secrets.json file.
type secrets struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	OAuthToken   string `json:"oauth_token"`
}

// Status describes where each half of the credentials came from.
type Status struct {
	Credentials helix.Credentials
	ClientID    Source
	OAuthToken  Source
}

// Lookup merges the credential sources.
// Config and environment win over the keyring, which wins over the secrets file.
// Each half is resolved independently.
func Lookup() (Status, error) {
	status := Status{ClientID: SourceNone, OAuthToken: SourceNone}

	apply := func(creds helix.Credentials, source Source) {
		if status.ClientID == SourceNone {
			if id := strings.TrimSpace(creds.ClientID); id != "" {
				status.Credentials.ClientID = id
				status.ClientID = source
			}
		}
		if status.OAuthToken == SourceNone {
			if token := strings.TrimSpace(creds.OAuthToken); token != "" {
				status.Credentials.OAuthToken = token
				status.OAuthToken = source
			}
		}
	}

	apply(helix.Credentials{
		ClientID:   viper.GetString(key.TwitchClientID),
		OAuthToken: viper.GetString(key.TwitchOAuthToken),
	}, SourceConfig)

	fromRing, err := fromKeyring()
	if err != nil {
		log.Warnf("Keyring is unavailable: %s", err)
	} else {
		apply(fromRing, SourceKeyring)
	}

	fromFile, err := readSecrets(where.Secrets())
	if err != nil {
		return status, err
	}
	apply(fromFile, SourceSecrets)

	return status, nil
}

// Load returns complete credentials or ErrMissing.
func Load() (helix.Credentials, error) {
	status, err := Lookup()
	if err != nil {
		return helix.Credentials{}, err
	}

	if !status.Credentials.Valid() {
		return helix.Credentials{}, ErrMissing
	}

	log.Debugf("Using credentials %s (client id from %s, token from %s)", status.Credentials, status.ClientID, status.OAuthToken)
	return status.Credentials, nil
}

func readSecrets(path string) (helix.Credentials, error) {
	data, err := filesystem.API().ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return helix.Credentials{}, nil
	}
	if err != nil {
		return helix.Credentials{}, err
	}

	var s secrets
	if err := json.Unmarshal(data, &s); err != nil {
		return helix.Credentials{}, fmt.Errorf("%s: %w", path, err)
	}

	return helix.Credentials{ClientID: s.ClientID, OAuthToken: s.OAuthToken}, nil
}
