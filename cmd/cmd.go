// Package cmd defines the command-line interface for blamescope.
package cmd

import (
	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(breakdownCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("ignore-dirs", "", "Comma-separated directory names to skip at any depth (merged with defaults)")
	rootCmd.PersistentFlags().String("ignore-file-types", "", "Comma-separated file extensions to skip (merged with defaults)")
	rootCmd.PersistentFlags().Int("file-limit", 0, "Stop after this many surviving files (0 = no limit)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for auto-generated output files (defaults to cwd)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Report export backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/auto)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Resolve outputs without writing files or exporting records")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of linesCmd to Viper
	linesCmd.Flags().StringP("columns", "c", "", "Comma-separated attribute columns (defaults to commit,contributor,line_no,datetime,code)")
	if err := viper.BindPFlags(linesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding lines flags", err)
	}

	// Bind all flags of breakdownCmd to Viper
	breakdownCmd.Flags().StringP("by", "b", schema.AttrContributor, "Comma-separated ordered grouping attributes")
	if err := viper.BindPFlags(breakdownCmd.Flags()); err != nil {
		contract.LogFatal("Error binding breakdown flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
