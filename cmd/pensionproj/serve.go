package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/pensionproj/internal/api"
	"github.com/rgehrsitz/pensionproj/internal/config"
	"github.com/rgehrsitz/pensionproj/internal/storage"
	"github.com/rgehrsitz/pensionproj/internal/storage/cache"
	"github.com/rgehrsitz/pensionproj/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the projection HTTP service",
		Long: `Run the projection HTTP service.

Configuration is read from the environment:
  PENSIONPROJ_ADDR        listen address (default :8080)
  PENSIONPROJ_DB_PATH     SQLite database for stored users (default pensionproj.db)
  PENSIONPROJ_REDIS_ADDR  Redis address for the user cache (disabled when empty)
  PENSIONPROJ_CACHE_TTL   cache entry lifetime (default 5m)
  PENSIONPROJ_DEBUG       enable debug logging
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServiceConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides PENSIONPROJ_ADDR)")
	return cmd
}

// runServer wires the store, optional cache and engine into the HTTP service and
// blocks until ctx is cancelled.
func runServer(ctx context.Context, cfg config.ServiceConfig) error {
	logger := simpleCLILogger{}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var source storage.SnapshotSource = store
	if cfg.CacheEnabled() {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			logger.Warnf("redis at %s unavailable, lookups will bypass the cache: %v", cfg.RedisAddr, err)
		}
		source = cache.NewCachedSource(store, rc, logger)
	}

	server := api.NewServer(newEngine(cfg.Debug), source, logger)
	return server.ListenAndServe(ctx, cfg.Addr)
}
