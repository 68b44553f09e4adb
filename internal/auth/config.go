package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// Scopes are the fixed Gmail scopes every credential is requested for.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailComposeScope,
}

// ErrClientSecretMissing indicates neither a client secret file nor the
// client environment variables are available.
var ErrClientSecretMissing = fmt.Errorf("%w: client secret not configured", ErrAuth)

const (
	envClientID     = "OAUTH_GOOGLE_CLIENT_ID"
	envClientSecret = "OAUTH_GOOGLE_CLIENT_SECRET"
)

// LoadConfig builds the OAuth2 client config from the Google client secret
// file at secretPath. When the file doesn't exist the OAUTH_GOOGLE_CLIENT_ID
// and OAUTH_GOOGLE_CLIENT_SECRET environment variables are used instead.
func LoadConfig(secretPath string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(secretPath)
	switch {
	case err == nil:
		cfg, err := google.ConfigFromJSON(raw, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: google.ConfigFromJSON failed: %w", ErrAuth, err)
		}

		return cfg, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: os.ReadFile failed: %w", ErrAuth, err)
	}

	clientID := os.Getenv(envClientID)
	clientSecret := os.Getenv(envClientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: %s not found and %s/%s not set", ErrClientSecretMissing, secretPath, envClientID, envClientSecret)
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       slices.Clone(Scopes),
		Endpoint:     google.Endpoint,
	}, nil
}
