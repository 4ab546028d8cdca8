package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "autolink/internal/platform/errors"
	phttp "autolink/internal/platform/net/http"
	"autolink/internal/services/api/linkify/domain"
	linkrepo "autolink/internal/services/api/linkify/repo"
	svc "autolink/internal/services/api/linkify/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func newRouter(t *testing.T) stdhttp.Handler {
	t.Helper()
	l := zerolog.Nop()
	s := svc.New(nil, linkrepo.NewPG(), svc.WithLogger(&l))
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), s)
	return mux
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v\n%s", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestLinkify_OK(t *testing.T) {
	h := newRouter(t)
	code, env := do(t, h, stdhttp.MethodPost, "/", `{"text":"go to https://go.dev","rewrites":{"https://go.dev":"Go"}}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status %d: %+v", code, env)
	}
	var out domain.LinkifyOutput
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data: %v", err)
	}
	if out.Display != "go to Go" || len(out.Items) != 1 || out.Items[0].Category != "url" {
		t.Fatalf("out = %+v", out)
	}
}

func TestLinkify_Errors(t *testing.T) {
	h := newRouter(t)
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		field  string
	}{
		{"malformed json", stdhttp.MethodPost, "/", `{"text":`, stdhttp.StatusBadRequest, ""},
		{"unknown builtin", stdhttp.MethodPost, "/", `{"text":"x","categories":["fax"]}`, stdhttp.StatusBadRequest, "categories[0]"},
		{"custom shadows builtin", stdhttp.MethodPost, "/", `{"text":"x","custom":[{"name":"email","keywords":["a"]}]}`, stdhttp.StatusUnprocessableEntity, "custom[0].name"},
		{"custom without rules", stdhttp.MethodPost, "/", `{"text":"x","custom":[{"name":"t"}]}`, stdhttp.StatusUnprocessableEntity, "categories[0]"},
		{"rewrites need postgres", stdhttp.MethodGet, "/rewrites/m", ``, stdhttp.StatusServiceUnavailable, ""},
		{"put needs entries", stdhttp.MethodPut, "/rewrites/m", `{"entries":{}}`, stdhttp.StatusBadRequest, "entries"},
		{"clicks need clickhouse", stdhttp.MethodPost, "/clicks", `{"category":"url","original":"o","display":"d"}`, stdhttp.StatusServiceUnavailable, ""},
		{"click validation", stdhttp.MethodPost, "/clicks", `{"category":"url"}`, stdhttp.StatusBadRequest, "original"},
		{"click offset overflows uint32", stdhttp.MethodPost, "/clicks", `{"category":"url","original":"o","display":"d","offset":4294967296}`, stdhttp.StatusBadRequest, "offset"},
		{"top limit", stdhttp.MethodPost, "/clicks/top", `{"limit":1000}`, stdhttp.StatusBadRequest, "limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, h, tc.method, tc.path, tc.body)
			if code != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status %d (%d), want %d: %+v", code, env.StatusCode, tc.status, env)
			}
			if env.Error == "" {
				t.Fatalf("missing error message")
			}
			if env.Field != tc.field {
				t.Fatalf("field %q, want %q", env.Field, tc.field)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	h := newRouter(t)
	code, env := do(t, h, stdhttp.MethodGet, "/categories", ``)
	if code != stdhttp.StatusOK {
		t.Fatalf("status %d", code)
	}
	var out domain.CategoriesOutput
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(out.Categories) != 5 {
		t.Fatalf("categories = %+v", out.Categories)
	}
}
