// Package app builds the service graph shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Taichi-iskw/tagscribe/internal/cache"
	"github.com/Taichi-iskw/tagscribe/internal/config"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/service/relocation"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

// Services holds every domain service
type Services struct {
	Taxonomy    taxonomy.Service
	Transcripts transcript.Service
	Impressions impression.Recorder
	Relocation  relocation.Service
	Analytics   analytics.Service
}

// App owns the connections behind Services
type App struct {
	Config *config.Config
	Log    *logger.Logger
	Pool   *pgxpool.Pool
	Cache  cache.Cache
	Services
}

// NewServices wires the services over one set of stores. Writers that change
// analytics results invalidate the analytics cache after they commit.
func NewServices(stores repository.Stores, tx repository.TxRunner, c cache.Cache, cfg *config.Config, log *logger.Logger) Services {
	inv := analytics.NewInvalidator(c, log)
	return Services{
		Taxonomy:    invalidatingTaxonomy{Service: taxonomy.NewService(stores, tx, log), inv: inv},
		Transcripts: transcript.NewService(stores, tx, log),
		Impressions: invalidatingRecorder{Recorder: impression.NewRecorder(stores, tx, log), inv: inv},
		Relocation:  invalidatingRelocation{Service: relocation.NewService(tx, log), inv: inv},
		Analytics:   analytics.NewService(stores, c, cfg.Analytics.CacheTTL, log),
	}
}

// New connects to Postgres (and Redis when configured) and builds the services.
// The returned cleanup closes every connection.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, func(), error) {
	pool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var c cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		c, err = cache.NewRedis(ctx, log, cfg.RedisURL)
		if err != nil {
			// analytics still works uncached
			log.Warn("redis unavailable, analytics cache disabled", "error", err)
			c = cache.Nop{}
		}
	}

	stores := repository.NewStores(pool)
	tx := repository.NewTxRunner(pool)

	cleanup := func() {
		if err := c.Close(); err != nil {
			log.Warn("failed to close cache", "error", err)
		}
		config.CloseDatabasePool(pool)
	}

	return &App{
		Config:   cfg,
		Log:      log,
		Pool:     pool,
		Cache:    c,
		Services: NewServices(stores, tx, c, cfg, log),
	}, cleanup, nil
}

// Load reads the configuration, builds a logger and calls New
func Load(ctx context.Context) (*App, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a, cleanup, err := New(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, nil, err
	}
	return a, func() {
		cleanup()
		log.Sync()
	}, nil
}
