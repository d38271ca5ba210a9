package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/yearcal/internal/cache"
	"github.com/neexbeast/yearcal/internal/config"
	"github.com/neexbeast/yearcal/internal/holiday"
	"github.com/neexbeast/yearcal/internal/storage"
)

// backends are the holiday fetcher and the optional shared stores behind it.
type backends struct {
	fetcher *holiday.Fetcher
	pool    *pgxpool.Pool
	redis   *redis.Client
	repo    *storage.Repository
}

// openBackends connects the configured stores and layers them under the
// fetcher: memory, then Redis, then PostgreSQL. With migrate set, the
// database schema is brought up to date first.
func openBackends(ctx context.Context, cfg *config.Config, log *slog.Logger, migrate bool) (*backends, error) {
	b := &backends{}
	tiers := holiday.NewTiered(log).Add("memory", holiday.NewMemoryCache())

	if cfg.Redis.URL != "" {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		b.redis = client
		tiers.Add("redis", cache.NewCache(client, cfg.Redis.TTL))
	}

	if cfg.Database.URL != "" {
		pool, err := storage.Connect(ctx, cfg.Database.URL)
		if err != nil {
			b.close()
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		b.pool = pool

		if migrate {
			schema := storage.Migrations()
			if cfg.Database.Migrations != "" {
				schema = os.DirFS(cfg.Database.Migrations)
			}
			if err := storage.RunMigrations(ctx, pool, schema); err != nil {
				b.close()
				return nil, fmt.Errorf("running migrations: %w", err)
			}
			log.Info("migrations applied")
		}

		b.repo = storage.NewRepository(pool)
		tiers.Add("postgres", b.repo)
	}

	var source holiday.Source = holiday.NewClientWithURL(cfg.Holidays.BaseURL)
	if cfg.Holidays.Fallback == config.FallbackBuiltin {
		source = &holiday.FallbackSource{
			Primary:  source,
			Fallback: holiday.NewBuiltinSource(),
			Log:      log,
		}
	}

	b.fetcher = holiday.NewFetcher(source, tiers, log)
	return b, nil
}

func (b *backends) close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

// pgxPoolPinger adapts pgxpool.Pool to the api.Pinger interface.
type pgxPoolPinger struct {
	pool *pgxpool.Pool
}

func (p *pgxPoolPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// redisPingerAdapter adapts redis.Client to the api.Pinger interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
