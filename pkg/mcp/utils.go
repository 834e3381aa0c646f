package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg returns the trimmed string argument name, or "" when it is absent
// or not a string.
func stringArg(request mcp.CallToolRequest, name string) string {
	v, _ := request.Params.Arguments[name].(string)
	return strings.TrimSpace(v)
}

// intArg returns a numeric argument. JSON numbers arrive as float64.
func intArg(request mcp.CallToolRequest, name string, fallback int) int {
	if v, ok := request.Params.Arguments[name].(float64); ok {
		return int(v)
	}
	return fallback
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
