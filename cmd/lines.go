package cmd

import (
	"github.com/huangsam/blamescope/core"
	"github.com/huangsam/blamescope/internal/contract"
	"github.com/spf13/cobra"
)

// linesCmd extracts per-line authorship records.
var linesCmd = &cobra.Command{
	Use:   "lines [repo-path]",
	Short: "Show every blamed line as a structured record.",
	Long: `Run git blame over the repository and emit one record per surviving line.

Each record carries the commit hash, contributor, line number, commit
timestamp and the code itself, plus file-level context columns. Lines
that cannot be parsed are dropped with a warning; the rest of the file
still contributes records.

Examples:
  # Blame the current repository with default columns
  blamescope lines

  # Pick specific columns
  blamescope lines --columns commit,contributor,code

  # Export raw records for downstream analysis
  blamescope lines --output parquet --output-file blame.parquet

  # Export records to a local SQLite report store
  blamescope lines --store-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLineBlame(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run lines analysis", err)
		}
	},
}
