package main

import (
	"os"
	"strings"

	"clarityhire/internal/database/seeder"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo company, questions and job",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if strings.TrimSpace(password) == "" {
				password = os.Getenv("SEED_DEMO_PASSWORD")
			}
			runner := seeder.Runner{Seeders: seeder.Defaults(password), Logger: logger}
			if err := runner.Run(cmd.Context(), db); err != nil {
				return err
			}
			logger.Printf("[Seeder] done | company=%s login=%s", seeder.DemoSlug, seeder.DemoEmail)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password for the demo recruiter (default $SEED_DEMO_PASSWORD)")
	return cmd
}
