// Package repo provides postgres access for rewrite tables and clickhouse access for click events
package repo

import (
	"context"
	"maps"
	"slices"

	"autolink/internal/modkit/repokit"
)

// Repo is the persistence surface for named rewrite tables
type Repo interface {
	Rewrites(ctx context.Context, table string) (map[string]string, error)
	UpsertRewrites(ctx context.Context, table string, entries map[string]string) (int64, error)
	DeleteTable(ctx context.Context, table string) (int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Rewrites(ctx context.Context, table string) (map[string]string, error) {
	const sql = `
select original, display
from url_rewrites
where table_name = $1
order by original asc
`
	rows, err := r.q.Query(ctx, sql, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var orig, disp string
		if err := rows.Scan(&orig, &disp); err != nil {
			return nil, err
		}
		out[orig] = disp
	}
	return out, rows.Err()
}

func (r *queries) UpsertRewrites(ctx context.Context, table string, entries map[string]string) (int64, error) {
	const sql = `
insert into url_rewrites (table_name, original, display, updated_at)
values ($1, $2, $3, now())
on conflict (table_name, original)
do update set display = excluded.display, updated_at = now()
`
	var n int64
	// sorted so concurrent writers take row locks in the same order
	for _, orig := range slices.Sorted(maps.Keys(entries)) {
		tag, err := r.q.Exec(ctx, sql, table, orig, entries[orig])
		if err != nil {
			return n, err
		}
		n += tag.RowsAffected()
	}
	return n, nil
}

func (r *queries) DeleteTable(ctx context.Context, table string) (int64, error) {
	const sql = `delete from url_rewrites where table_name = $1`
	tag, err := r.q.Exec(ctx, sql, table)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
