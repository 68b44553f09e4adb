// Package gservice wraps the Gmail REST API calls used by the tools.
package gservice

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUserID = "me"

type httpClientProvider interface {
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// NewFactory creates a Factory authorizing requests through provider.
// Extra options are applied after the authorized HTTP client.
func NewFactory(provider httpClientProvider, opts ...option.ClientOption) *Factory {
	return &Factory{
		provider: provider,
		opts:     opts,
	}
}

// Factory opens a Gmail client bound to a freshly loaded credential.
type Factory struct {
	provider httpClientProvider
	opts     []option.ClientOption
}

// Open returns a Client for the authenticated account.
func (f *Factory) Open(ctx context.Context) (*Client, error) {
	clt, err := f.provider.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider.HTTPClient failed: %w", err)
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(clt)}, f.opts...)

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return &Client{svc: svc}, nil
}

// Client issues Gmail API calls on behalf of the authenticated account.
type Client struct {
	svc *gmail.Service
}

// GetProfile returns the account profile, including its own address.
func (c *Client) GetProfile(ctx context.Context) (*gmail.Profile, error) {
	profile, err := c.svc.Users.GetProfile(gmailUserID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("users.GetProfile failed: %w", err)
	}

	return profile, nil
}

// SendMessage sends a base64url encoded RFC 5322 message.
func (c *Client) SendMessage(ctx context.Context, raw string) (*gmail.Message, error) {
	msg, err := c.svc.Users.Messages.Send(gmailUserID, &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Send failed: %w", err)
	}

	return msg, nil
}

// ListMessages lists at most maxResults message IDs carrying all labelIDs.
func (c *Client) ListMessages(ctx context.Context, labelIDs []string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	result, err := c.svc.Users.Messages.List(gmailUserID).
		LabelIds(labelIDs...).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("messages.List failed: %w", err)
	}

	return result, nil
}

// GetMessageMetadata fetches only the named headers of a message.
func (c *Client) GetMessageMetadata(ctx context.Context, msgID string, headers ...string) (*gmail.Message, error) {
	msg, err := c.svc.Users.Messages.Get(gmailUserID, msgID).
		Format("metadata").
		MetadataHeaders(headers...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}
