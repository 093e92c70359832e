package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"cms_backend/internal/app/di"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes",
		Long:  `Create the unique and lookup indexes (mongo) or tables (sqlite, postgres) for the configured store.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	cmd.Println("Connecting to store...")
	repos, err := di.OpenRepositories(ctx, cfg.Store)
	if err != nil {
		return oops.Code("STORE_CONNECT_FAILED").With("driver", cfg.Store.Driver).Wrap(err)
	}
	defer func() { _ = repos.Close(context.Background()) }()

	cmd.Println("Running migrations...")
	if err := repos.Migrate(ctx); err != nil {
		return oops.Code("MIGRATION_FAILED").With("driver", cfg.Store.Driver).Wrap(err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
