package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "autolink/internal/platform/errors"
	"autolink/internal/platform/logger"
	"autolink/internal/platform/net/middleware"
	"autolink/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	testkit.Serial(t)
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &buf})
	t.Cleanup(func() { logger.Init(logger.Options{Level: "error", Writer: io.Discard}) })
	return &buf
}

func TestRecover_WritesErrorEnvelope(t *testing.T) {
	logs := captureLogs(t)

	r := chi.NewRouter()
	r.Use(chimw.RequestID, middleware.Recover)
	r.Post("/linkify", func(http.ResponseWriter, *http.Request) { panic("scanner blew up") })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/linkify", nil)
	req.Header.Set("X-Request-Id", "rid-7")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
	var env struct {
		Code      perr.ErrorCode `json:"code"`
		Error     string         `json:"error"`
		RequestID string         `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if env.Code != perr.ErrorCodePanic || env.RequestID != "rid-7" || strings.Contains(env.Error, "blew up") {
		t.Fatalf("envelope %+v", env)
	}
	out := logs.String()
	testkit.MustContain(t, out, `"panic":"scanner blew up"`)
	testkit.MustContain(t, out, `"stack":`)
}

func TestRecover_AbortHandlerPropagates(t *testing.T) {
	h := middleware.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatalf("ErrAbortHandler must be re-panicked")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLog_LineFields(t *testing.T) {
	logs := captureLogs(t)

	r := chi.NewRouter()
	r.Use(chimw.RequestID, middleware.AccessLog(time.Hour))
	r.Put("/rewrites/{table}", func(w http.ResponseWriter, r *http.Request) {
		logger.C(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "stored")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/rewrites/marketing", nil)
	req.Header.Set("X-Request-Id", "rid-9")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated || rec.Body.String() != "stored" {
		t.Fatalf("response %d %q", rec.Code, rec.Body.String())
	}
	out := logs.String()
	for _, want := range []string{
		`"route":"/rewrites/{table}"`,
		`"path":"/rewrites/marketing"`,
		`"status":201`,
		`"bytes":6`,
		`"level":"info"`,
	} {
		testkit.MustContain(t, out, want)
	}
	if strings.Count(out, `"request_id":"rid-9"`) != 2 {
		t.Fatalf("request id not on both lines:\n%s", out)
	}
}

func TestAccessLog_SlowIsWarn(t *testing.T) {
	logs := captureLogs(t)

	h := middleware.AccessLog(time.Nanosecond)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Millisecond)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clicks/top", nil))

	out := logs.String()
	testkit.MustContain(t, out, `"level":"warn"`)
	testkit.MustContain(t, out, `"status":200`)
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS([]string{"https://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/linkify/rewrites/m", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("headers %v", rec.Header())
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut) {
		t.Fatalf("PUT not allowed: %v", rec.Header())
	}
}
