package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "autolink/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, d Deps, path string, wantStatus int, out any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != wantStatus {
		t.Fatalf("%s: status %d, want %d", path, rec.Code, wantStatus)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("data %s: %v", env.Data, err)
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		stores []Store
		status int
		want   string
		states []string
	}{
		{"nothing configured", []Store{{Name: "pg"}, {Name: "ch"}}, http.StatusOK, "ok", []string{"skipped", "skipped"}},
		{"pg up", []Store{{Name: "pg", Backend: pinger{}}, {Name: "ch"}}, http.StatusOK, "ok", []string{"ok", "skipped"}},
		{"ch down", []Store{{Name: "pg", Backend: pinger{}}, {Name: "ch", Backend: pinger{err: errors.New("dial tcp: refused")}}}, http.StatusServiceUnavailable, "fail", []string{"ok", "fail"}},
		{"not pingable", []Store{{Name: "pg", Backend: struct{}{}}}, http.StatusOK, "degraded", []string{"unknown"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out Readiness
			get(t, Deps{Service: "autolink-api", Started: time.Now(), Stores: tc.stores}, "/ready", tc.status, &out)
			if out.Status != tc.want || len(out.Stores) != len(tc.states) {
				t.Fatalf("ready %+v, want %s", out, tc.want)
			}
			for i, s := range tc.states {
				if out.Stores[i].State != s {
					t.Fatalf("store %d: %+v, want %s", i, out.Stores[i], s)
				}
			}
		})
	}
}

type stalled struct{}

func (stalled) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestReady_TimeoutFails(t *testing.T) {
	d := Deps{Started: time.Now(), ReadyTimeout: 20 * time.Millisecond, Stores: []Store{{Name: "pg", Backend: stalled{}}}}
	var out Readiness
	get(t, d, "/ready", http.StatusServiceUnavailable, &out)
	if out.Status != "fail" || out.Stores[0].Error != context.DeadlineExceeded.Error() {
		t.Fatalf("ready %+v", out)
	}
}

func TestHealthAndEngine(t *testing.T) {
	d := Deps{Service: "autolink-api", Started: time.Now().Add(-time.Minute)}

	var h Health
	get(t, d, "/health", http.StatusOK, &h)
	if !h.OK || h.Service != "autolink-api" || h.Uptime < 59 {
		t.Fatalf("health %+v", h)
	}

	var eng Engine
	get(t, d, "/engine", http.StatusOK, &eng)
	if eng.Rules == 0 || len(eng.Categories) != 5 || eng.Categories[0] != "url" {
		t.Fatalf("engine %+v", eng)
	}
}
