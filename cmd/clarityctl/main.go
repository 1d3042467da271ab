package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clarityhire/internal/config"
	"clarityhire/internal/database"
	dbpostgres "clarityhire/internal/database/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logger = log.New(os.Stdout, "", log.LstdFlags)

var rootCmd = &cobra.Command{
	Use:           "clarityctl",
	Short:         "ClarityHire admin tasks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read .env: %w", err)
		}
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads the config and opens the pool shared by every subcommand.
func connect(ctx context.Context) (config.Config, database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(cctx, cfg.Database)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}
