package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/csfund/crowdfund-system/internal/api"
	"github.com/csfund/crowdfund-system/internal/core/ports"
	"github.com/csfund/crowdfund-system/internal/core/service"
	"github.com/csfund/crowdfund-system/internal/infrastructure/config"
	csvstore "github.com/csfund/crowdfund-system/internal/infrastructure/db/csv"
	mongostore "github.com/csfund/crowdfund-system/internal/infrastructure/db/mongo"
	redisstore "github.com/csfund/crowdfund-system/internal/infrastructure/db/redis"
	"github.com/csfund/crowdfund-system/internal/infrastructure/http/handlers"
	"github.com/csfund/crowdfund-system/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pledge ledger HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// repositories groups the store-backend ports plus the readiness probe for
// whichever backend got selected.
type repositories struct {
	projects ports.ProjectRepository
	tiers    ports.TierRepository
	users    ports.UserRepository
	pledges  ports.PledgeRepository
	health   handlers.DependencyCheck
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	repos, cleanup, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	healthChecks := []handlers.DependencyCheck{repos.health}

	var replay service.ReplayCache
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		replay = redisstore.NewReplayCache(rdb)
		healthChecks = append(healthChecks, handlers.DependencyCheck{
			Name: "redis",
			Probe: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("pledge replay cache enabled")
	}

	router := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(repos.users, cfg.JWTSecret, 24*time.Hour),
		Catalog:      service.NewCatalogService(repos.projects, repos.tiers),
		Pledges:      service.NewPledgeService(repos.projects, repos.tiers, repos.pledges, replay, logger.For("pledge_ledger")),
		Stats:        service.NewStatsService(repos.pledges, repos.projects, logger.For("stats")),
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
		HealthChecks: healthChecks,
	})

	// Serve until the context is cancelled, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start(":" + cfg.Port)
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.StoreBackend).
		Str("env", cfg.Env).
		Msg("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func buildRepositories(ctx context.Context, cfg *config.Config) (*repositories, func(), error) {
	switch cfg.StoreBackend {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return &repositories{
			projects: mongostore.NewProjectRepository(db),
			tiers:    mongostore.NewTierRepository(db),
			users:    mongostore.NewUserRepository(db),
			pledges:  mongostore.NewPledgeRepository(db),
			health: handlers.DependencyCheck{
				Name: "mongodb",
				Probe: func(ctx context.Context) error {
					return client.Ping(ctx, nil)
				},
			},
		}, cleanup, nil

	default: // csv
		store, err := csvstore.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open data dir %s (run 'crowdfund seed' first?): %w", cfg.DataDir, err)
		}
		return &repositories{
			projects: csvstore.NewProjectRepository(store),
			tiers:    csvstore.NewTierRepository(store),
			users:    csvstore.NewUserRepository(store),
			pledges:  csvstore.NewPledgeRepository(store),
			health: handlers.DependencyCheck{
				Name: "csv_store",
				Probe: func(ctx context.Context) error {
					_, err := os.Stat(store.Dir())
					return err
				},
			},
		}, func() {}, nil
	}
}
