package tool

import (
	"context"

	"google.golang.org/api/gmail/v1"
)

//go:generate moq -out mailbox_mock_test.go -pkg tool_test . Mailbox:mailboxMock

// Mailbox is the part of the Gmail API the tools call.
type Mailbox interface {
	GetProfile(ctx context.Context) (*gmail.Profile, error)
	SendMessage(ctx context.Context, raw string) (*gmail.Message, error)
	ListMessages(ctx context.Context, labelIDs []string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadata(ctx context.Context, msgID string, headers ...string) (*gmail.Message, error)
}

// OpenFunc opens a Mailbox bound to a freshly loaded credential.
type OpenFunc func(ctx context.Context) (Mailbox, error)
