package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// ErrAuthorizationRequired indicates a new authorization is needed but the
// provider is not allowed to run one.
var ErrAuthorizationRequired = fmt.Errorf("%w: authorization required", ErrAuth)

// Authorizer obtains a brand new token, usually with help from a human.
type Authorizer interface {
	Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// BootstrapRequired is an Authorizer that never authorizes and tells the
// operator which command performs the one-time authorization instead.
type BootstrapRequired struct {
	Command string
}

// Authorize always fails with ErrAuthorizationRequired.
func (b BootstrapRequired) Authorize(context.Context, *oauth2.Config) (*oauth2.Token, error) {
	return nil, fmt.Errorf("%w: run %q first", ErrAuthorizationRequired, b.Command)
}

// Provider hands out authorized HTTP clients. The credential is reloaded
// from its store on every call and never cached in memory. Calls are
// serialized so overlapping tool calls refresh or authorize only once.
type Provider struct {
	mu         sync.Mutex
	cfg        *oauth2.Config
	store      *Store
	authorizer Authorizer
}

// NewProvider creates a Provider for cfg backed by store.
func NewProvider(cfg *oauth2.Config, store *Store, authorizer Authorizer) *Provider {
	return &Provider{
		cfg:        cfg,
		store:      store,
		authorizer: authorizer,
	}
}

// HTTPClient returns an HTTP client authorized with a valid credential.
func (p *Provider) HTTPClient(ctx context.Context) (*http.Client, error) {
	cred, err := p.Credential(ctx)
	if err != nil {
		return nil, err
	}

	return p.cfg.Client(ctx, cred.OAuthToken()), nil
}

// Credential loads the persisted credential, refreshing it or running the
// authorizer when it can't be used as-is. Any new credential is persisted.
func (p *Provider) Credential(ctx context.Context) (*Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cred, err := p.store.Load()
	switch {
	case errors.Is(err, ErrTokenNotSet):
		log.Printf("No token in %s, authorization required", p.store.Path())
	case err != nil:
		return nil, fmt.Errorf("%w: store.Load failed: %w", ErrAuth, err)
	case cred.Valid(p.cfg.Scopes):
		return cred, nil
	case cred.Refreshable(p.cfg.Scopes):
		return p.refresh(ctx, cred)
	default:
		log.Printf("Token in %s is expired or lacks scopes, authorization required", p.store.Path())
	}

	return p.authorize(ctx)
}

// Authorize runs the authorizer unconditionally and persists its token.
func (p *Provider) Authorize(ctx context.Context) (*Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.authorize(ctx)
}

func (p *Provider) authorize(ctx context.Context) (*Credential, error) {
	tok, err := p.authorizer.Authorize(ctx, p.cfg)
	if err != nil {
		return nil, authErr("authorizer.Authorize", err)
	}

	cred := NewCredential(tok, p.cfg.Scopes)
	if err := p.store.Save(cred); err != nil {
		return nil, fmt.Errorf("%w: store.Save failed: %w", ErrAuth, err)
	}

	return cred, nil
}

func (p *Provider) refresh(ctx context.Context, cred *Credential) (*Credential, error) {
	log.Println("Refreshing expired token")

	tok, err := p.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token refresh failed: %w", ErrAuth, err)
	}
	if tok.RefreshToken == "" {
		tok.RefreshToken = cred.RefreshToken
	}

	scopes := cred.Scopes
	if len(scopes) == 0 {
		scopes = p.cfg.Scopes
	}

	refreshed := NewCredential(tok, scopes)
	if err := p.store.Save(refreshed); err != nil {
		return nil, fmt.Errorf("%w: store.Save failed: %w", ErrAuth, err)
	}

	return refreshed, nil
}

func authErr(op string, err error) error {
	if errors.Is(err, ErrAuth) {
		return fmt.Errorf("%s failed: %w", op, err)
	}

	return fmt.Errorf("%w: %s failed: %w", ErrAuth, op, err)
}
