// Package tool exposes the Gmail send and unread tools over MCP.
package tool

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const unknownToolText = "Unknown tool"

type handlerFunc func(ctx context.Context, mb Mailbox, args map[string]string) (string, error)

// Adapter translates tool invocations into Gmail API calls.
type Adapter struct {
	open     OpenFunc
	metrics  *Metrics
	tools    []*mcp.Tool
	byName   map[string]*mcp.Tool
	handlers map[string]handlerFunc
}

// NewAdapter creates an Adapter opening one Mailbox per invocation.
// metrics may be nil.
func NewAdapter(open OpenFunc, metrics *Metrics) *Adapter {
	a := &Adapter{
		open:    open,
		metrics: metrics,
		tools:   newCatalog(),
		handlers: map[string]handlerFunc{
			SendEmailName:       sendEmail,
			GetUnreadEmailsName: getUnreadEmails,
		},
	}

	a.byName = make(map[string]*mcp.Tool, len(a.tools))
	for _, t := range a.tools {
		a.byName[t.Name] = t
	}

	return a
}

// Tools returns the tool catalog, identical on every call.
func (a *Adapter) Tools() []*mcp.Tool {
	return slices.Clone(a.tools)
}

// Call runs the named tool. An unrecognized name yields an "Unknown tool"
// text result rather than an error.
func (a *Adapter) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	start := time.Now()

	t, ok := a.byName[name]
	if !ok {
		log.Printf("Unknown tool %q called", name)
		a.metrics.observe("other", statusUnknown, start)
		return textResult(unknownToolText), nil
	}

	text, err := a.call(ctx, t, args)
	if err != nil {
		log.Printf("Tool %s failed: %v", name, err)
		a.metrics.observe(name, statusError, start)
		return nil, err
	}

	a.metrics.observe(name, statusSuccess, start)

	return textResult(text), nil
}

func (a *Adapter) call(ctx context.Context, t *mcp.Tool, args map[string]any) (string, error) {
	in, err := stringArgs(t, args)
	if err != nil {
		return "", err
	}

	mb, err := a.open(ctx)
	if err != nil {
		return "", fmt.Errorf("open mailbox failed: %w", err)
	}

	return a.handlers[t.Name](ctx, mb, in)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
