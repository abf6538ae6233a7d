package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/taigaflow/taiga-mcp/taiga"
)

// WhoamiTool handles the taiga_whoami MCP tool.
type WhoamiTool struct {
	client *taiga.Client
}

// NewWhoamiTool creates a WhoamiTool.
func NewWhoamiTool(client *taiga.Client) *WhoamiTool {
	return &WhoamiTool{client: client}
}

// Definition returns the MCP tool definition for taiga_whoami.
func (t *WhoamiTool) Definition() mcp.Tool {
	return mcp.NewTool("taiga_whoami",
		mcp.WithDescription(
			"Show the authenticated Taiga user and the local view of the session, "+
				"including token expiry when known. Use this to diagnose auth problems.",
		),
	)
}

// Handle processes the taiga_whoami tool call.
func (t *WhoamiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session := t.client.Session()

	user, err := t.client.Me(ctx)
	if err != nil {
		// The session diagnostics are still useful when the call fails,
		// so include them alongside the error.
		res, _ := jsonResult(map[string]any{"session": session})
		return mcp.NewToolResultError("fetching current user: " + err.Error() + "\n" + textOf(res)), nil
	}

	return jsonResult(map[string]any{
		"user":    user,
		"session": session,
	})
}

// textOf extracts the text of a single-content tool result.
func textOf(res *mcp.CallToolResult) string {
	if res == nil || len(res.Content) == 0 {
		return ""
	}
	if tc, ok := res.Content[0].(mcp.TextContent); ok {
		return tc.Text
	}
	return ""
}
