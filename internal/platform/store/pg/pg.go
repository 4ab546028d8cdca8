// Package pg builds the pgx pool that backs rewrite tables
package pg

import (
	"context"
	"time"

	"autolink/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string
	MaxConns int32

	// Trace logs every statement through the given logger when true
	Trace bool
	Slow  time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds a pool. pgxpool connects lazily, callers ping
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Trace {
		pc.ConnConfig.Tracer = &Tracer{Log: log.With().Str("component", "pg").Logger(), Slow: cfg.Slow}
	}
	return newPool(ctx, pc)
}
