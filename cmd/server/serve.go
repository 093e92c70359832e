package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cms_backend/internal/app/di"
	platformredis "cms_backend/internal/platform/redis"
)

const readHeaderTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Connect to the store, ensure indexes, and serve the HTTP API
until SIGINT or SIGTERM.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	repos, err := di.OpenRepositories(ctx, cfg.Store)
	if err != nil {
		slog.Error("store unavailable", "driver", cfg.Store.Driver, "error", err)
		return err
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()
	if err := repos.Migrate(ctx); err != nil {
		return err
	}

	// Redis
	rdb, err := platformredis.NewRedisClient(ctx, platformredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache and token revocation.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	engine, err := di.NewEngine(cfg, repos, rdb)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: engine, ReadHeaderTimeout: readHeaderTimeout}
	slog.Info("server starting", "addr", ln.Addr().String(), "driver", cfg.Store.Driver, "version", cfg.App.Version)
	return serve(ctx, srv, ln, cfg.HTTP.ShutdownTimeout)
}

// serve runs srv on ln until ctx is done, then shuts it down gracefully
// within shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
