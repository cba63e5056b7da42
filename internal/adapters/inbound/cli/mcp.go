package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/repovet/repovet/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the repovet MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the repovet MCP server (stdio)",
		Long:  "Start the repovet MCP server using stdio transport, so AI assistants can vet repositories on demand.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewRepovetMCPServer(token)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub API token (defaults to $GITHUB_TOKEN)")

	return cmd
}
