package tool

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrMalformedArgument is wrapped by every argument validation failure.
var ErrMalformedArgument = errors.New("malformed argument")

// MalformedArgumentError reports an argument that doesn't match the tool's
// input schema.
type MalformedArgumentError struct {
	Tool     string
	Argument string
	Reason   string
}

func (e *MalformedArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %q %s", e.Tool, e.Argument, e.Reason)
}

func (e *MalformedArgumentError) Unwrap() error {
	return ErrMalformedArgument
}

// stringArgs checks args against the string properties declared by t and
// returns the declared ones that are present.
func stringArgs(t *mcp.Tool, args map[string]any) (map[string]string, error) {
	schema := t.InputSchema
	out := make(map[string]string, len(schema.Properties))

	for _, name := range slices.Sorted(maps.Keys(schema.Properties)) {
		if schema.Properties[name].Type != "string" {
			continue
		}

		v, ok := args[name]
		if !ok || v == nil {
			if slices.Contains(schema.Required, name) {
				return nil, &MalformedArgumentError{Tool: t.Name, Argument: name, Reason: "is required"}
			}
			continue
		}

		s, ok := v.(string)
		if !ok {
			return nil, &MalformedArgumentError{Tool: t.Name, Argument: name, Reason: fmt.Sprintf("must be a string, got %T", v)}
		}
		out[name] = s
	}

	return out, nil
}
