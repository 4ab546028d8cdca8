package repo

import (
	"context"
	"time"

	"autolink/internal/platform/store"

	"github.com/google/uuid"
)

// ClicksTable is the clickhouse table click events land in
const ClicksTable = "link_clicks"

// ClickRow is one click event, fields in table column order
type ClickRow struct {
	ID       uuid.UUID
	At       time.Time
	Category string
	Original string
	Display  string
	Offset   uint32
	Source   string
}

// TopRow is one aggregated link
type TopRow struct {
	Original string
	Category string
	Clicks   uint64
}

// Clicks is the persistence surface for click events
type Clicks interface {
	Insert(ctx context.Context, rows []ClickRow) error
	Top(ctx context.Context, category string, limit int) ([]TopRow, error)
}

// CH writes click events through the store clickhouse seam
type CH struct{ ch store.Clickhouse }

// NewCH returns a clicks repo, nil when clickhouse is not configured
func NewCH(c store.Clickhouse) Clicks {
	if c == nil {
		return nil
	}
	return &CH{ch: c}
}

// Insert appends rows in one batch
func (r *CH) Insert(ctx context.Context, rows []ClickRow) error {
	data := make([][]any, 0, len(rows))
	for _, c := range rows {
		data = append(data, []any{c.ID, c.At, c.Category, c.Original, c.Display, c.Offset, c.Source})
	}
	return r.ch.Insert(ctx, ClicksTable, data)
}

// Top returns the most clicked links, optionally for one category
func (r *CH) Top(ctx context.Context, category string, limit int) ([]TopRow, error) {
	const sql = `
select original, category, count() as clicks
from link_clicks
where (? = '' or category = ?)
group by original, category
order by clicks desc, original asc
limit ?
`
	rows, err := r.ch.Query(ctx, sql, category, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TopRow
	for rows.Next() {
		var tr TopRow
		if err := rows.Scan(&tr.Original, &tr.Category, &tr.Clicks); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
