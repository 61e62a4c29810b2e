package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const snapshotKey = "mediqueue:catalog:snapshot:v1"

// cacheClient is the subset of *redis.Client the cache uses.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedRepo serves List from a redis snapshot and drops the snapshot on
// every write. Redis errors never fail a call; the inner repository is
// authoritative.
type CachedRepo struct {
	Repository
	rdb    cacheClient
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewCachedRepo(inner Repository, rdb cacheClient, ttl time.Duration, logger zerolog.Logger) *CachedRepo {
	return &CachedRepo{Repository: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *CachedRepo) List(ctx context.Context) ([]*Condition, error) {
	data, err := r.rdb.Get(ctx, snapshotKey).Bytes()
	switch {
	case err == nil:
		var items []*Condition
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		r.logger.Warn().Msg("discarding undecodable catalog snapshot")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn().Err(err).Msg("catalog cache read failed")
	}

	items, err := r.Repository.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		if err := r.rdb.Set(ctx, snapshotKey, data, r.ttl).Err(); err != nil {
			r.logger.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return items, nil
}

func (r *CachedRepo) Create(ctx context.Context, c *Condition) error {
	if err := r.Repository.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRepo) Update(ctx context.Context, c *Condition) error {
	if err := r.Repository.Update(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRepo) Upsert(ctx context.Context, c *Condition) (bool, error) {
	created, err := r.Repository.Upsert(ctx, c)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *CachedRepo) invalidate(ctx context.Context) {
	if err := r.rdb.Del(ctx, snapshotKey).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
