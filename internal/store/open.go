package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dukerupert/habits/internal/config"
	"github.com/dukerupert/habits/internal/database"
)

// Open builds the KV backend named by cfg, instrumented for metrics. The
// returned closer releases the underlying connection.
func Open(cfg *config.Config, logger *slog.Logger) (KV, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite store", "path", cfg.DBPath)
		return Instrumented(NewSQLiteKV(db), cfg.Backend), db, nil

	case config.BackendRedis:
		rdb := NewRedisClient(RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv := NewRedisKV(rdb, cfg.Redis.Prefix)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := kv.Ping(ctx); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		logger.Info("using redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return Instrumented(kv, cfg.Backend), rdb, nil

	case config.BackendMemory:
		logger.Warn("using in-memory store, nothing will be saved")
		return Instrumented(NewMemoryKV(), cfg.Backend), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// nopCloser is the closer for backends that hold no connection.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }
