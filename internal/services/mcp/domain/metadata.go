package domain

import (
	"github.com/fracturedbytes/vitals/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// invocationIDMetaKey carries the server-side invocation identifier back to
// the client in tool result metadata.
const invocationIDMetaKey = "vitals/invocation_id"

// NewInvocationID generates an identifier for one tool invocation.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithInvocation builds a tool result carrying the invocation
// identifier in its metadata.
func CallToolResultWithInvocation(invocationID string) *mcp.CallToolResult {
	if invocationID == "" {
		return nil
	}
	return &mcp.CallToolResult{
		Meta: map[string]any{
			invocationIDMetaKey: invocationID,
		},
	}
}
