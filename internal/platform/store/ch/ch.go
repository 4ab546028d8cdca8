// Package ch is the clickhouse client behind the click sink
package ch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

var errNoConn = errors.New("ch: no connection")

// Config points at the server and names this client
type Config struct {
	URL  string
	Role string
	Tag  string
}

// CH wraps a native connection
type CH struct {
	conn driver.Conn
}

var openConn = clickhouse.Open

// Open parses cfg.URL and opens a native connection; nothing is dialed until first use
func Open(_ context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.Role, cfg.Tag)
	conn, err := openConn(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	return &CH{conn: conn}, nil
}

// clientInfo shows up in system.query_log as "autolink-<role>/<tag> go/<version>"
func clientInfo(role, tag string) clickhouse.ClientInfo {
	name := "autolink"
	if role = strings.TrimSpace(role); role != "" {
		name += "-" + role
	}
	if tag = strings.TrimSpace(tag); tag == "" {
		tag = "dev"
	}
	return clickhouse.ClientInfo{Products: []struct {
		Name    string
		Version string
	}{
		{Name: name, Version: tag},
		{Name: "go", Version: strings.TrimPrefix(runtime.Version(), "go")},
	}}
}

// Insert sends rows to table as one batch. Rows follow the table's column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if c == nil || c.conn == nil {
		return errNoConn
	}
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch: %s row %d: %w", table, i, err)
		}
	}
	return batch.Send()
}

func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	if c == nil || c.conn == nil {
		return nil, errNoConn
	}
	return c.conn.Query(ctx, sql, args...)
}

func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	if c == nil || c.conn == nil {
		return errNoConn
	}
	return c.conn.Exec(ctx, sql, args...)
}

func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errNoConn
	}
	return c.conn.Ping(ctx)
}

// Close is a no-op on a nil client
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
