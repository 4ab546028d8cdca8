package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"autolink/internal/platform/config"
	phttp "autolink/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestBuild_OperationsAndErrors(t *testing.T) {
	Add(
		Op{Method: http.MethodPost, Path: "/linkify", Tag: "Linkify", Summary: "old"},
		Op{Method: http.MethodPost, Path: "/linkify", Tag: "Linkify", Summary: "Detect links"},
		Op{Method: http.MethodGet, Path: "/linkify/rewrites/{table}", Tag: "Linkify", Summary: "Read", Errors: []int{http.StatusNotFound, http.StatusServiceUnavailable}},
	)

	doc := build("Autolink API")
	post := doc.Paths["/linkify"]["post"]
	if post.Summary != "Detect links" || post.Tags[0] != "Linkify" {
		t.Fatalf("post %+v", post)
	}
	if len(post.Responses) != 4 {
		t.Fatalf("post responses %v", post.Responses)
	}
	get := doc.Paths["/linkify/rewrites/{table}"]["get"]
	for _, code := range []string{"200", "400", "404", "422", "500", "503"} {
		if _, ok := get.Responses[code]; !ok {
			t.Fatalf("missing %s in %v", code, get.Responses)
		}
	}
	if got := get.Responses["404"].Content["application/json"].Schema.Ref; got != "#/components/schemas/Error" {
		t.Fatalf("ref %q", got)
	}
	if _, ok := doc.Components.Schemas["Error"]; !ok || doc.Servers[0].URL != "/api/v1" {
		t.Fatalf("doc %+v", doc)
	}
}

func TestMount(t *testing.T) {
	t.Setenv("SWAGGERKIT_TEST_DOCS_TITLE", "Autolink API (dev)")
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), config.New().Prefix("SWAGGERKIT_TEST_"), true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, docPath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status %d", rec.Code)
	}
	var doc document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.0.3" || doc.Info.Title != "Autolink API (dev)" {
		t.Fatalf("doc %+v", doc.Info)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status %d", rec.Code)
	}

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), config.New(), false)
	rec = httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, docPath, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled mount served %d", rec.Code)
	}
}
