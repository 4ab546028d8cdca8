package repo

import (
	"context"

	"autolink/internal/modkit/repokit"
	"autolink/internal/platform/store"
)

// PGSchema creates the rewrite table store
const PGSchema = `
create table if not exists url_rewrites (
	table_name text not null,
	original   text not null,
	display    text not null,
	updated_at timestamptz not null default now(),
	primary key (table_name, original)
)
`

// CHSchema creates the click event table
const CHSchema = `
create table if not exists link_clicks (
	id       UUID,
	at       DateTime64(3, 'UTC'),
	category LowCardinality(String),
	original String,
	display  String,
	pos      UInt32,
	source   LowCardinality(String)
) engine = MergeTree
order by (category, at)
`

// EnsurePG applies PGSchema, safe to run on every boot
func EnsurePG(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, PGSchema)
	return err
}

// EnsureCH applies CHSchema
func EnsureCH(ctx context.Context, c store.Clickhouse) error {
	return c.Exec(ctx, CHSchema)
}

// LockTable serializes writers of one rewrite table for the rest of the tx
func LockTable(table string) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, `select pg_advisory_xact_lock(hashtext('url_rewrites:' || $1))`, table)
		return err
	}
}
