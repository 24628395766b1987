package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg returns a trimmed string argument, or "" when absent.
func stringArg(request mcp.CallToolRequest, name string) string {
	v, _ := request.Params.Arguments[name].(string)
	return strings.TrimSpace(v)
}

// idArg reads a positive integer id. JSON numbers arrive as float64; strings
// are accepted too.
func idArg(request mcp.CallToolRequest, name string) (int64, error) {
	switch v := request.Params.Arguments[name].(type) {
	case float64:
		if v <= 0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("'%s' must be a positive whole number", name)
		}
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("'%s' must be a positive whole number", name)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("'%s' parameter is required", name)
	}
}

// jsonResult marshals v as the tool's text result.
func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err))
	}
	return mcp.NewToolResultText(string(out))
}
