// Package auth stores and loads the credentials used for the Helix metadata lookup.
package auth

import (
	"errors"

	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/helix"
	"github.com/zalando/go-keyring"
)

const (
	userClientID   = "client-id"
	userOAuthToken = "oauth-token"
)

// Save persists the credentials to the system keyring.
func Save(creds helix.Credentials) error {
	if err := keyring.Set(constant.App, userClientID, creds.ClientID); err != nil {
		return err
	}
	return keyring.Set(constant.App, userOAuthToken, creds.OAuthToken)
}

// fromKeyring reads the credentials from the system keyring.
// Missing entries are left empty.
func fromKeyring() (helix.Credentials, error) {
	var creds helix.Credentials

	clientID, err := keyring.Get(constant.App, userClientID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return creds, err
	}
	creds.ClientID = clientID

	token, err := keyring.Get(constant.App, userOAuthToken)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return creds, err
	}
	creds.OAuthToken = token

	return creds, nil
}

// Delete removes the credentials from the system keyring.
// Deleting absent credentials is not an error.
func Delete() error {
	for _, user := range []string{userClientID, userOAuthToken} {
		if err := keyring.Delete(constant.App, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	return nil
}
