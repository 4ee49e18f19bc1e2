package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shorty/internal/app"
	sqlstore "github.com/MrSnakeDoc/shorty/internal/store/sql"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates or updates the links table.",
	Long: `Connects to the configured database and creates the links table with
its unique short code index. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := loadRuntime()
		defer func() { _ = log.Sync() }()

		db, err := app.OpenDatabase(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := sqlstore.Close(db); err != nil {
				log.Warnf("failed to close database: %v", err)
			}
		}()

		if err := sqlstore.Migrate(db); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s database migrated\n", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
