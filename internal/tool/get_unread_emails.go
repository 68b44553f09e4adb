package tool

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
)

const (
	unreadLabel = "UNREAD"
	unreadLimit = 5
)

// EmailSummary is the header metadata reported for an unread message.
type EmailSummary struct {
	ID      string
	From    string
	Subject string
}

func (s EmailSummary) String() string {
	return fmt.Sprintf("From: %s, Subject: %s, ID: %s", s.From, s.Subject, s.ID)
}

func getUnreadEmails(ctx context.Context, mb Mailbox, _ map[string]string) (string, error) {
	result, err := mb.ListMessages(ctx, []string{unreadLabel}, unreadLimit)
	if err != nil {
		return "", fmt.Errorf("mailbox.ListMessages failed: %w", err)
	}

	messages := result.Messages
	if len(messages) > unreadLimit {
		messages = messages[:unreadLimit]
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		msg, err := mb.GetMessageMetadata(ctx, m.Id, "From", "Subject")
		if err != nil {
			return "", fmt.Errorf("get message %s failed: %w", m.Id, err)
		}

		lines = append(lines, extractSummary(m.Id, msg).String())
	}

	return strings.Join(lines, "\n"), nil
}

func extractSummary(id string, msg *gmail.Message) EmailSummary {
	summary := EmailSummary{ID: id}
	if msg.Payload == nil {
		return summary
	}

	for _, header := range msg.Payload.Headers {
		switch {
		case strings.EqualFold(header.Name, "From"):
			summary.From = header.Value
		case strings.EqualFold(header.Name, "Subject"):
			summary.Subject = header.Value
		}
	}

	return summary
}
