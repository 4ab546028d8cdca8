// Package http serves the meta endpoints: liveness, readiness of the
// optional stores, build info and what the link engine ships with
package http

import (
	"context"
	"net/http"
	"time"

	"autolink/internal/core/category"
	"autolink/internal/core/patterns"
	"autolink/internal/core/version"
	"autolink/internal/modkit/httpkit"
	"autolink/internal/modkit/swaggerkit"
	"autolink/internal/platform/store"
)

// DefaultReadyTimeout bounds all store pings of one readiness request
const DefaultReadyTimeout = 2 * time.Second

// Store is a backend readiness reports on; a nil Backend is not configured
type Store struct {
	Name    string
	Backend any
}

type Deps struct {
	Service      string
	Started      time.Time
	Stores       []Store
	ReadyTimeout time.Duration // DefaultReadyTimeout when zero
}

// Health is GET /meta/health
type Health struct {
	OK      bool      `json:"ok"`
	Service string    `json:"service"`
	Started time.Time `json:"started"`
	Uptime  int64     `json:"uptime_seconds"`
}

// StoreState is one entry of Readiness: ok, fail, skipped or unknown
type StoreState struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Error  string `json:"error,omitempty"`
	TookMs int64  `json:"took_ms"`
}

// Readiness is GET /meta/ready. Status is fail (503) when a configured
// store does not answer and degraded when one cannot be pinged at all
type Readiness struct {
	Status string       `json:"status"`
	Stores []StoreState `json:"stores"`
}

// Engine is GET /meta/engine
type Engine struct {
	PackVersion int      `json:"pack_version"`
	Rules       int      `json:"rules"`
	Categories  []string `json:"categories"`
}

func Register(r httpkit.Router, d Deps) {
	routes := []struct {
		path, summary string
		h             func(*http.Request) (any, error)
	}{
		{"/health", "Liveness and uptime", d.health},
		{"/service", "Service name and uptime", d.health},
		{"/ready", "Readiness of the rewrite and click stores", d.ready},
		{"/version", "Build info", func(*http.Request) (any, error) { return version.Info(), nil }},
		{"/engine", "Pattern pack and builtin categories", engine},
	}
	for _, rt := range routes {
		httpkit.Get(r, rt.path, rt.h)
		op := swaggerkit.Op{Method: http.MethodGet, Path: "/meta" + rt.path, Tag: "Meta", Summary: rt.summary}
		if rt.path == "/ready" {
			op.Errors = []int{http.StatusServiceUnavailable}
		}
		swaggerkit.Add(op)
	}
}

func (d Deps) health(*http.Request) (any, error) {
	return Health{
		OK:      true,
		Service: d.Service,
		Started: d.Started.UTC(),
		Uptime:  int64(time.Since(d.Started) / time.Second),
	}, nil
}

func (d Deps) ready(r *http.Request) (any, error) {
	budget := d.ReadyTimeout
	if budget <= 0 {
		budget = DefaultReadyTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), budget)
	defer cancel()

	out := Readiness{Status: "ok", Stores: make([]StoreState, 0, len(d.Stores))}
	for _, s := range d.Stores {
		st := ping(ctx, s)
		switch {
		case st.State == "fail":
			out.Status = "fail"
		case st.State == "unknown" && out.Status == "ok":
			out.Status = "degraded"
		}
		out.Stores = append(out.Stores, st)
	}
	if out.Status == "fail" {
		return httpkit.Status(http.StatusServiceUnavailable, out), nil
	}
	return out, nil
}

func ping(ctx context.Context, s Store) StoreState {
	st := StoreState{Name: s.Name, State: "skipped"}
	if s.Backend == nil {
		return st
	}
	p, ok := s.Backend.(store.Pinger)
	if !ok {
		st.State = "unknown"
		return st
	}
	start := time.Now()
	err := p.Ping(ctx)
	st.TookMs = time.Since(start).Milliseconds()
	if err != nil {
		st.State, st.Error = "fail", err.Error()
		return st
	}
	st.State = "ok"
	return st
}

func engine(*http.Request) (any, error) {
	pack, err := patterns.Default()
	if err != nil {
		return nil, err
	}
	out := Engine{PackVersion: pack.Version, Rules: len(pack.Rules)}
	for _, c := range category.Builtins() {
		out.Categories = append(out.Categories, c.Name())
	}
	return out, nil
}
