package tool

import (
	"context"
	"fmt"
)

const emailSentText = "Email sent!"

func sendEmail(ctx context.Context, mb Mailbox, args map[string]string) (string, error) {
	profile, err := mb.GetProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("mailbox.GetProfile failed: %w", err)
	}

	msg := OutboundEmail{
		From:    profile.EmailAddress,
		To:      args[argRecipientID],
		Subject: args[argSubject],
		Body:    args[argMessage],
	}

	if _, err := mb.SendMessage(ctx, msg.Raw()); err != nil {
		return "", fmt.Errorf("mailbox.SendMessage failed: %w", err)
	}

	return emailSentText, nil
}
