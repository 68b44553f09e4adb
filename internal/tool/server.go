package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const methodCallTool = "tools/call"

// NewServer creates an MCP server exposing every tool of a.
func NewServer(a *Adapter, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "gmail", Version: version}, nil)

	for _, t := range a.Tools() {
		mcp.AddTool(server, t, a.handler(t.Name))
	}

	server.AddReceivingMiddleware(a.unknownToolMiddleware)

	return server
}

func (a *Adapter) handler(name string) func(context.Context, *mcp.CallToolRequest, map[string]any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		res, err := a.Call(ctx, name, args)
		return res, nil, err
	}
}

// unknownToolMiddleware answers tools/call for names outside the catalog
// with the "Unknown tool" result instead of the server's invalid params
// error.
func (a *Adapter) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}

		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil {
			return next(ctx, method, req)
		}
		if _, known := a.byName[call.Params.Name]; known {
			return next(ctx, method, req)
		}

		return a.Call(ctx, call.Params.Name, nil)
	}
}
