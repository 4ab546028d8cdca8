package store

import (
	"context"
	"fmt"
	"time"

	"autolink/internal/platform/logger"
	"autolink/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier struct{ db pgxQuerier }

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return q.db.Exec(ctx, sql, args...)
}

func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.db.QueryRow(ctx, sql, args...)
}

// postgres is the pool backed TxRunner
type postgres struct {
	querier
	pool *pgxpool.Pool
}

func (p *postgres) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(querier{db: tx})
	})
}

func (p *postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *postgres) Close() error {
	p.pool.Close()
	return nil
}

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// pingPolicy doubles from 150ms up to 2s between attempts, giving up after
// retries attempts in total or when ctx ends
func pingPolicy(ctx context.Context, retries int) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 150 * time.Millisecond
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = 0
	exp.Reset()
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries-1)), ctx)
}

// openPG builds the pool and waits for the server to answer a ping
func openPG(ctx context.Context, cfg Config, log logger.Logger) (*postgres, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		Trace:    cfg.PG.LogSQL,
		Slow:     cfg.PG.SlowQuery,
	}, log)
	if err != nil {
		return nil, err
	}

	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	attempt := 0
	ping := func() error {
		attempt++
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return pool.Ping(pctx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("postgres not ready")
	}
	if err := backoff.RetryNotify(ping, pingPolicy(ctx, cfg.PG.ConnectRetries), notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping failed after %d attempts: %w", attempt, err)
	}
	return &postgres{querier: querier{db: pool}, pool: pool}, nil
}
