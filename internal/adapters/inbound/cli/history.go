package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repovet/repovet/internal/adapters/outbound/history"
	"github.com/repovet/repovet/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past scan results",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := history.New().Load()
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}
}
