package cmd

import (
	"strings"

	"github.com/huangsam/blamescope/internal/contract"
	"github.com/huangsam/blamescope/internal/iostore"
	"github.com/huangsam/blamescope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd groups report store management subcommands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the report export store.",
	Long:  `Inspect and maintain the database that 'lines' and 'breakdown' export records into.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// storeMigrateSetup loads minimal configuration needed for migrate
// operations. It does NOT open the store or create tables, allowing
// migrations to run on a fresh database.
func storeMigrateSetup() (schema.StoreBackend, string, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return schema.NoneBackend, "", err
		}
	}

	backend := schema.StoreBackend(strings.ToLower(viper.GetString("store-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	return backend, viper.GetString("store-connect"), nil
}

// storeMigrateCmd runs schema migrations against the report store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run report store schema migrations.",
	Long: `Apply or roll back report store schema migrations.

Examples:
  # Migrate to the latest version
  blamescope store migrate --store-backend sqlite

  # Roll back everything
  blamescope store migrate --store-backend sqlite --target-version 0`,
	Run: func(_ *cobra.Command, _ []string) {
		backend, connStr, err := storeMigrateSetup()
		if err != nil {
			contract.LogFatal("Cannot load store config", err)
		}
		target := viper.GetInt("target-version")
		if err := iostore.Migrate(backend, connStr, target); err != nil {
			contract.LogFatal("Cannot run store migration", err)
		}
	},
}
