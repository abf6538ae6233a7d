package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	taigahttp "github.com/taigaflow/taiga-mcp/http"
	"github.com/taigaflow/taiga-mcp/taiga"
)

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// requiredInt extracts a required positive integer argument. The second
// return is an error result to hand back when the argument is missing.
func requiredInt(req mcp.CallToolRequest, key string) (int, *mcp.CallToolResult) {
	v := intArg(req, key, 0)
	if v <= 0 {
		return 0, mcp.NewToolResultError(fmt.Sprintf("'%s' is required and must be a positive integer", key))
	}
	return v, nil
}

// refArg extracts the kind and id arguments shared by every tool that
// addresses a work item.
func refArg(req mcp.CallToolRequest) (taiga.ItemRef, *mcp.CallToolResult) {
	kind, err := taiga.ParseKind(req.GetString("kind", ""))
	if err != nil {
		return taiga.ItemRef{}, mcp.NewToolResultError("'kind' must be one of: issue, user_story, task")
	}
	id, errRes := requiredInt(req, "id")
	if errRes != nil {
		return taiga.ItemRef{}, errRes
	}
	return taiga.ItemRef{Kind: kind, ID: id}, nil
}

// jsonResult renders a value as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult converts a client error into a tool error result. The
// operation name gives the model context; well-known failures get a
// short hint on how to react.
func errResult(op string, err error) (*mcp.CallToolResult, error) {
	switch {
	case taigahttp.IsVersionConflict(err):
		return mcp.NewToolResultError(fmt.Sprintf("%s: the item changed while updating, retry the operation: %v", op, err)), nil
	case taigahttp.IsNotFound(err):
		return mcp.NewToolResultError(fmt.Sprintf("%s: not found: %v", op, err)), nil
	case taigahttp.IsUnauthorized(err):
		return mcp.NewToolResultError(fmt.Sprintf("%s: authentication failed, check the configured token: %v", op, err)), nil
	case taigahttp.IsForbidden(err):
		return mcp.NewToolResultError(fmt.Sprintf("%s: permission denied: %v", op, err)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", op, err)), nil
	}
}

// stringChange copies an optional string argument into a change set.
func stringChange(req mcp.CallToolRequest, changes map[string]any, key string) {
	if v := req.GetString(key, ""); v != "" {
		changes[key] = v
	}
}

// intChange copies an optional integer argument into a change set.
func intChange(req mcp.CallToolRequest, changes map[string]any, key string) {
	if v := intArg(req, key, 0); v > 0 {
		changes[key] = v
	}
}
