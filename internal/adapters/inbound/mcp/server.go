package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewRepovetMCPServer creates an MCP server with the repovet tools
// registered. The token authenticates GitHub API calls; empty means
// unauthenticated.
func NewRepovetMCPServer(token string) *server.MCPServer {
	s := server.NewMCPServer(
		"repovet",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, token)

	return s
}
