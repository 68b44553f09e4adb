// Package auth handles the Gmail OAuth2 credential: loading it from disk,
// refreshing it, running the authorization flow and persisting the result.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/oauth2"
)

var (
	// ErrAuth is wrapped by every failure to obtain a valid credential.
	ErrAuth = errors.New("gmail authorization failed")

	// ErrTokenNotSet indicates no credential is persisted yet.
	ErrTokenNotSet = errors.New("no token defined")
)

// Credential is the persisted authorization state of the mail account.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// NewCredential wraps an OAuth2 token granted for scopes.
func NewCredential(tok *oauth2.Token, scopes []string) *Credential {
	return &Credential{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
		Scopes:       slices.Clone(scopes),
	}
}

// OAuthToken returns the credential as an OAuth2 token.
func (c *Credential) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    c.TokenType,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// Covers reports whether the credential was granted every scope in scopes.
// A credential without a recorded scope set is assumed to cover them.
func (c *Credential) Covers(scopes []string) bool {
	if len(c.Scopes) == 0 {
		return true
	}

	for _, s := range scopes {
		if !slices.Contains(c.Scopes, s) {
			return false
		}
	}

	return true
}

// Valid reports whether the credential can be used as-is for scopes.
func (c *Credential) Valid(scopes []string) bool {
	return c.OAuthToken().Valid() && c.Covers(scopes)
}

// Refreshable reports whether an invalid credential can be renewed
// with its refresh token without a new authorization.
func (c *Credential) Refreshable(scopes []string) bool {
	return c.RefreshToken != "" && c.Covers(scopes)
}

// Store persists a Credential as JSON in a single file.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the credential from disk, returning ErrTokenNotSet when the
// file doesn't exist.
func (s *Store) Load() (*Credential, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTokenNotSet
		}

		return nil, fmt.Errorf("os.Open failed: %w", err)
	}
	defer func() { _ = f.Close() }()

	cred := &Credential{}
	if err := json.NewDecoder(f).Decode(cred); err != nil {
		return nil, fmt.Errorf("json.NewDecoder.Decode failed: %w", err)
	}
	if cred.AccessToken == "" && cred.RefreshToken == "" {
		return nil, ErrTokenNotSet
	}

	return cred, nil
}

// Save replaces the file with cred, creating its directory if needed. The
// file is written next to its final path and renamed into place, so a
// concurrent Load sees either the old or the new credential.
func (s *Store) Save(cred *Credential) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("os.MkdirAll failed: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp failed: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return fmt.Errorf("f.Chmod failed: %w", err)
	}

	if err := json.NewEncoder(f).Encode(cred); err != nil {
		_ = f.Close()
		return fmt.Errorf("json.NewEncoder.Encode failed: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close failed: %w", err)
	}

	if err := os.Rename(f.Name(), s.path); err != nil {
		return fmt.Errorf("os.Rename failed: %w", err)
	}

	log.Printf("Token persisted to %s", s.path)

	return nil
}
