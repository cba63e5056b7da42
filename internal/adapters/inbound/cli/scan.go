package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repovet/repovet/internal/adapters/outbound/config"
	"github.com/repovet/repovet/internal/adapters/outbound/githubapi"
	"github.com/repovet/repovet/internal/adapters/outbound/gitstats"
	"github.com/repovet/repovet/internal/adapters/outbound/history"
	"github.com/repovet/repovet/internal/adapters/outbound/tui"
	"github.com/repovet/repovet/internal/application"
	"github.com/repovet/repovet/internal/domain"
	"github.com/repovet/repovet/internal/domain/scoring"
)

func newScanCmd() *cobra.Command {
	var (
		jsonOutput bool
		badge      bool
		ciMode     bool
		minScore   int
		deepClone  bool
		token      string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan <repository-url>",
		Short: "Score a repository's fraud/abandonment risk",
		Long:  "Fetch a repository's metadata from the GitHub API, run the red-flag rules, and print a 0-100 risk score with findings.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := githubapi.ParseURL(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if token == "" {
				token = os.Getenv("GITHUB_TOKEN")
			}

			var deep domain.DeepScanner
			if deepClone {
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

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := svc.Scan(ctx, ref)
			if err != nil {
				return err
			}

			entry := domain.ReportEntry{
				Timestamp: report.Timestamp.Format(time.RFC3339),
				Repo:      report.RepoName,
				Score:     report.Score,
				Level:     report.Level,
			}
			_ = history.New().Save(entry) // best-effort

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case badge:
				renderBadge(cmd, report)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode && report.Score < minScore {
				return fmt.Errorf("risk score %d is below minimum %d", report.Score, minScore)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output a shields.io badge URL")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if the score is below --min")
	cmd.Flags().IntVar(&minScore, "min", 0, "Minimum acceptable score for CI mode")
	cmd.Flags().BoolVar(&deepClone, "clone", false, "Clone the repository for exact commit and line counts")
	cmd.Flags().StringVar(&token, "token", "", "GitHub API token (defaults to $GITHUB_TOKEN)")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Overall scan timeout")

	return cmd
}

func renderJSON(cmd *cobra.Command, report *domain.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func renderBadge(cmd *cobra.Command, report *domain.Report) {
	color := domain.LevelColor(report.Level)
	url := fmt.Sprintf("https://img.shields.io/badge/repovet-%d%%2F100-%s", report.Score, color)
	fmt.Fprintln(cmd.OutOrStdout(), url)
}
