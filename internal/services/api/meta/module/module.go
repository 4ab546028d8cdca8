// Package module mounts the meta endpoints at /meta
package module

import (
	"time"

	"autolink/internal/modkit"
	"autolink/internal/modkit/httpkit"
	metahttp "autolink/internal/services/api/meta/http"
)

// New builds the meta module. Readiness pings the stores deps carries within
// READY_TIMEOUT and reports the missing ones as skipped
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		Service:      "autolink-api",
		Started:      time.Now(),
		ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", metahttp.DefaultReadyTimeout),
	}
	d.Stores = []metahttp.Store{{Name: "pg"}, {Name: "ch"}}
	if deps.PG != nil {
		d.Stores[0].Backend = deps.PG
	}
	if deps.CH != nil {
		d.Stores[1].Backend = deps.CH
	}
	return modkit.New("meta", "/meta", func(r httpkit.Router) { metahttp.Register(r, d) }, opts...)
}
