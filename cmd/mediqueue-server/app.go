package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mediqueue/mediqueue/internal/config"
	"github.com/mediqueue/mediqueue/internal/domain/catalog"
	"github.com/mediqueue/mediqueue/internal/domain/intake"
	"github.com/mediqueue/mediqueue/internal/domain/queue"
	"github.com/mediqueue/mediqueue/internal/domain/triage"
	"github.com/mediqueue/mediqueue/internal/platform/db"
	"github.com/mediqueue/mediqueue/internal/platform/events"
	"github.com/mediqueue/mediqueue/internal/platform/messaging"
	"github.com/mediqueue/mediqueue/internal/platform/websocket"
)

// app holds the wired services shared by the server and the CLI commands.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	pool    *pgxpool.Pool
	catalog *catalog.Service
	queue   *queue.Service
	intake  *intake.Service
	hub     *websocket.Hub

	closers []func()
}

func buildApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	var (
		catalogRepo catalog.Repository
		queueRepo   queue.Repository
	)
	if cfg.UsesPostgres() {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.pool = pool
		a.closers = append(a.closers, pool.Close)
		logger.Info().Msg("connected to database")

		catalogRepo = catalog.NewRepoPG(pool)
		queueRepo = queue.NewRepoPG(pool)
	} else {
		catalogRepo = catalog.NewMemoryRepo()
		queueRepo = queue.NewMemoryRepo()
		logger.Warn().Msg("using in-memory store; data is lost on restart")
	}

	if cfg.RedisURL != "" {
		rdb, err := catalog.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		catalogRepo = catalog.NewCachedRepo(catalogRepo, rdb, cfg.CatalogCacheTTL, logger)
		logger.Info().Dur("ttl", cfg.CatalogCacheTTL).Msg("catalog snapshot cache enabled")
	}

	a.hub = websocket.NewHub(logger)
	publishers := events.NewFanout(a.hub)
	if cfg.NATSURL != "" {
		nc, err := messaging.Connect(messaging.Config{
			URL:            cfg.NATSURL,
			Name:           "mediqueue-server",
			SubjectPrefix:  cfg.NATSSubjectPrefix,
			ReconnectWait:  2 * time.Second,
			MaxReconnects:  60,
			ConnectTimeout: 5 * time.Second,
		}, logger)
		if err != nil {
			// Queue events are best effort; the clinic keeps working without the bus.
			logger.Warn().Err(err).Msg("nats unavailable, queue events stay local")
		} else {
			a.closers = append(a.closers, func() { _ = nc.Close() })
			publishers.Add(nc)
		}
	}

	a.catalog = catalog.NewService(catalogRepo)
	a.queue = queue.NewService(queueRepo, publishers, logger, queue.Limits{Queue: cfg.QueueLimit, Log: cfg.LogLimit})
	a.intake = intake.NewService(a.catalog, a.queue, triage.DefaultPolicy().WithRedFlagThreshold(cfg.RedFlagBonusThreshold))
	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
