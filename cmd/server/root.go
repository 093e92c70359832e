package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cms_backend/internal/platform/config"
	"cms_backend/internal/platform/logger"
)

// NewRootCmd creates the root command. Running it without a subcommand serves the API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cms-server",
		Short: "CMS API server",
		Long: `Content-management backend: authentication plus CRUD over
content items, categories and authors.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	// Flag names are config keys; only flags given on the command line override
	// the file and environment layers.
	f := cmd.PersistentFlags()
	f.String("config", "", "YAML config file path")
	f.String("http.addr", "", "HTTP listen address")
	f.String("store.driver", "", "store backend: mongo, sqlite or postgres")
	f.String("store.mongo_url", "", "MongoDB connection URL")
	f.String("store.dsn", "", "SQL data source name")
	f.String("redis.addr", "", "Redis address (empty disables cache and token revocation)")
	f.String("log.level", "", "log level: debug, info, warn or error")
	f.String("log.format", "", "log format: json or text")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// loadConfig reads the layered configuration and installs the default logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Options{File: path, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	logger.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if cfg.IsDevelopment() && cfg.Auth.SecretKey == config.DevelopmentSecret {
		slog.Warn("auth.secret_key is the development default. Set a strong secret in production.")
	}
	return cfg, nil
}
