package main

import (
	"clarityhire/internal/database/migration"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if dir == "" {
				dir = cfg.Migration.Dir
			}
			applied, err := migration.Runner{Dir: dir, Logger: logger}.Run(cmd.Context(), db.SQLDB())
			if err != nil {
				return err
			}
			logger.Printf("[Migration] done | applied=%d", len(applied))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")
	return cmd
}
