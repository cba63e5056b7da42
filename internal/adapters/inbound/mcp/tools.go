package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repovet/repovet/internal/adapters/outbound/config"
	"github.com/repovet/repovet/internal/adapters/outbound/githubapi"
	"github.com/repovet/repovet/internal/adapters/outbound/gitstats"
	"github.com/repovet/repovet/internal/application"
	"github.com/repovet/repovet/internal/domain"
	"github.com/repovet/repovet/internal/domain/scoring"
)

// registerTools registers the repovet MCP tools on the given server.
func registerTools(s *server.MCPServer, token string) {
	s.AddTool(
		mcplib.NewTool("repovet_scan",
			mcplib.WithDescription("Score a GitHub repository's fraud/abandonment risk and return the full report as JSON"),
			mcplib.WithString("url",
				mcplib.Required(),
				mcplib.Description("GitHub repository URL, e.g. https://github.com/owner/repo"),
			),
			mcplib.WithBoolean("clone",
				mcplib.Description("Clone the repository for exact commit and line counts"),
			),
		),
		handleScan(token),
	)

	s.AddTool(
		mcplib.NewTool("repovet_vocabulary",
			mcplib.WithDescription("Return the active keyword vocabularies used by the text-matching rules"),
		),
		handleVocabulary(),
	)
}

func handleScan(token string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rawURL, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		ref, err := githubapi.ParseURL(rawURL)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := config.New().Load(".")
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}

		var deep domain.DeepScanner
		if clone, _ := request.GetArguments()["clone"].(bool); clone {
			deep = gitstats.New()
		}

		svc := application.NewScanService(
			githubapi.New(token, cfg.CommitCap),
			deep,
			scoring.New(
				scoring.WithVocabulary(cfg.Vocabulary),
				scoring.WithManyCommitsThreshold(cfg.ManyCommitsThreshold),
			),
		)

		report, err := svc.Scan(ctx, ref)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleVocabulary() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := config.New().Load(".")
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		return jsonResult(cfg.Vocabulary)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
