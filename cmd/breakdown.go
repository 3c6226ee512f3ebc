package cmd

import (
	"github.com/huangsam/blamescope/core"
	"github.com/huangsam/blamescope/internal/contract"
	"github.com/spf13/cobra"
)

// breakdownCmd aggregates blame records into nested counts.
var breakdownCmd = &cobra.Command{
	Use:   "breakdown [repo-path]",
	Short: "Aggregate blamed lines by one or more attributes.",
	Long: `Count blamed lines grouped by an ordered list of attributes.

Grouping by a single attribute produces a flat count table with
percentages of the total. Grouping by several attributes produces a
nested rollup where each level preserves first-encounter order.

Examples:
  # Who owns the most lines?
  blamescope breakdown --by contributor

  # Ownership split per file type
  blamescope breakdown --by file_type,contributor

  # Commit concentration per file
  blamescope breakdown --by file_path,commit --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBreakdown(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run breakdown analysis", err)
		}
	},
}
