package pg

import (
	"context"
	"strings"
	"time"

	"autolink/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// Tracer is a pgx.QueryTracer that logs each statement with its duration.
// Failed statements and statements at or over Slow log at warn
type Tracer struct {
	Log  logger.Logger
	Slow time.Duration
}

var _ pgx.QueryTracer = (*Tracer)(nil)

type startKey struct{}

type started struct {
	sql  string
	args int
	at   time.Time
}

// TraceQueryStart stashes the statement on ctx for TraceQueryEnd
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startKey{}, started{sql: d.SQL, args: len(d.Args), at: time.Now()})
}

// TraceQueryEnd logs the statement started on ctx
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(startKey{}).(started)
	if !ok {
		return
	}
	took := time.Since(st.at)
	slow := t.Slow > 0 && took >= t.Slow

	ev := t.Log.Info()
	if d.Err != nil || slow {
		ev = t.Log.Warn().Err(d.Err)
	}
	// arg values are rewrite urls; only the count is logged
	ev.Dur("took", took).
		Bool("slow", slow).
		Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Int("args", st.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Msg("pg query")
}
