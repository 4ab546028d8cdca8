// Package store opens the two optional backends behind the api: postgres holds
// rewrite tables and clickhouse receives click events. A backend that is not
// configured stays nil and the endpoints that need it answer 503
package store

import (
	"context"
	"errors"
	"fmt"

	"autolink/internal/platform/logger"
)

// Row is a single scanned row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is the sql surface rewrite repos run against, either the pool or a tx
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in one transaction, committing when fn returns nil
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the click sink: batched inserts plus reads for stats
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Store holds the opened backends
type Store struct {
	PG TxRunner
	CH Clickhouse

	log logger.Logger
}

// Option customizes Open
type Option func(*Store)

// WithLogger sets the logger for connect retries and sql tracing
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open connects every backend enabled in cfg. If a later backend fails the
// earlier ones are closed before returning
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{log: logger.Get().With().Str("component", "store").Logger()}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s.log)
		if err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
		s.PG = db
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg.CH)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
		s.CH = c
	}
	return s, nil
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	backends := []struct {
		name string
		b    any
	}{{"pg", s.PG}, {"ch", s.CH}}
	for _, be := range backends {
		p, ok := be.b.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", be.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend; safe on a partially opened store
func (s *Store) Close() error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
