package tool

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names exposed to MCP clients.
const (
	SendEmailName       = "send-email"
	GetUnreadEmailsName = "get-unread-emails"
)

// Argument names of send-email.
const (
	argRecipientID = "recipient_id"
	argSubject     = "subject"
	argMessage     = "message"
)

func newCatalog() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        SendEmailName,
			Description: "Send an email",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					argRecipientID: {Type: "string"},
					argSubject:     {Type: "string"},
					argMessage:     {Type: "string"},
				},
				Required: []string{argRecipientID, argSubject, argMessage},
			},
		},
		{
			Name:        GetUnreadEmailsName,
			Description: "Get unread emails",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
				Required:   []string{},
			},
		},
	}
}
