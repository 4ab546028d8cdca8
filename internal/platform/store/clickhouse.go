package store

import (
	"context"

	"autolink/internal/platform/store/ch"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// chConn is the part of *ch.CH the click sink uses
type chConn interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (driver.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// clickhouse narrows driver.Rows to Rows; everything else passes through
type clickhouse struct{ chConn }

func (c clickhouse) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.chConn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

type chRows struct{ driver.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }

func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := ch.Open(ctx, ch.Config{URL: cfg.URL, Role: cfg.Role, Tag: cfg.Tag})
	if err != nil {
		return nil, err
	}
	return clickhouse{c}, nil
}
