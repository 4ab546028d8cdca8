// Package swaggerkit serves an OpenAPI document built from the operations
// modules Add, plus Swagger UI reading it
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"autolink/internal/platform/config"
	phttp "autolink/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docPath = "/api/docs/doc.json"

// Mount serves the UI under /api/docs when enabled. DOCS_TITLE overrides the title
func Mount(r phttp.Router, cfg config.Conf, enabled bool) {
	if !enabled {
		return
	}
	title := cfg.MayString("DOCS_TITLE", "Autolink API")

	r.Get("/api/docs", http.RedirectHandler("/api/docs/", http.StatusPermanentRedirect).ServeHTTP)
	r.Get(docPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(build(title))
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(httpSwagger.URL(docPath)))
}
