// Package eduquest holds build metadata shared by the eduquest binaries.
package eduquest

// Version is the application version reported by the CLI and the MCP server.
const Version = "0.3.0"
