// Package http provides http transport for linkify
package http

import (
	stdhttp "net/http"

	"autolink/internal/modkit/httpkit"
	"autolink/internal/modkit/swaggerkit"
	"autolink/internal/services/api/linkify/domain"
	svc "autolink/internal/services/api/linkify/service"
)

// Register mounts linkify endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// one linkify pass
	httpkit.PostJSON[domain.LinkifyInput](r, "/", h.linkify)

	// builtin categories and rules
	httpkit.Get(r, "/categories", h.categories)

	// stored rewrite tables
	httpkit.Get(r, "/rewrites/{table}", h.rewriteTable)
	httpkit.PutJSON[domain.RewriteTableInput](r, "/rewrites/{table}", h.putRewriteTable)

	// click events
	httpkit.PostJSON[domain.ClickInput](r, "/clicks", h.recordClick)
	httpkit.PostJSON[domain.TopClicksInput](r, "/clicks/top", h.topClicks)

	unavailable := stdhttp.StatusServiceUnavailable
	swaggerkit.Add(
		swaggerkit.Op{Method: stdhttp.MethodPost, Path: "/linkify", Tag: "Linkify", Summary: "Detect links and apply URL rewrites",
			Errors: []int{stdhttp.StatusNotFound, unavailable}},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/linkify/categories", Tag: "Linkify", Summary: "Builtin categories and their rules"},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/linkify/rewrites/{table}", Tag: "Linkify", Summary: "Read a stored rewrite table",
			Errors: []int{stdhttp.StatusNotFound, unavailable}},
		swaggerkit.Op{Method: stdhttp.MethodPut, Path: "/linkify/rewrites/{table}", Tag: "Linkify", Summary: "Store rewrite table entries",
			Errors: []int{stdhttp.StatusConflict, unavailable}},
		swaggerkit.Op{Method: stdhttp.MethodPost, Path: "/linkify/clicks", Tag: "Linkify", Summary: "Record a click on a rendered link",
			Errors: []int{unavailable}},
		swaggerkit.Op{Method: stdhttp.MethodPost, Path: "/linkify/clicks/top", Tag: "Linkify", Summary: "Most clicked links",
			Errors: []int{unavailable}},
	)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /linkify Linkify linkify
// @Summary Detect links and apply URL rewrites
// @Tags Linkify
// @Accept json
// @Produce json
// @Param payload body domain.LinkifyInput true "Text and categories"
// @Success 200 {object} domain.LinkifyOutput "ok"
// @Failure 422 {object} errors.Wire "invalid category configuration"
// @Router /linkify [post]
func (h *handlers) linkify(r *stdhttp.Request, in domain.LinkifyInput) (any, error) {
	return h.svc.Linkify(r.Context(), in)
}

// swagger:route GET /linkify/categories Linkify linkifyCategories
// @Summary Builtin categories and their rules
// @Tags Linkify
// @Produce json
// @Success 200 {object} domain.CategoriesOutput "ok"
// @Router /linkify/categories [get]
func (h *handlers) categories(r *stdhttp.Request) (any, error) {
	return h.svc.Categories(r.Context())
}

// swagger:route GET /linkify/rewrites/{table} Linkify linkifyRewriteTable
// @Summary Read a stored rewrite table
// @Tags Linkify
// @Produce json
// @Param table path string true "Table name"
// @Success 200 {object} domain.RewriteTableOutput "ok"
// @Failure 404 {object} errors.Wire "unknown table"
// @Failure 503 {object} errors.Wire "postgres not configured"
// @Router /linkify/rewrites/{table} [get]
func (h *handlers) rewriteTable(r *stdhttp.Request) (any, error) {
	return h.svc.RewriteTable(r.Context(), httpkit.Param(r, "table"))
}

// swagger:route PUT /linkify/rewrites/{table} Linkify linkifyPutRewriteTable
// @Summary Store rewrite table entries
// @Tags Linkify
// @Accept json
// @Produce json
// @Param table path string true "Table name"
// @Param payload body domain.RewriteTableInput true "Entries"
// @Success 200 {object} domain.RewriteTableOutput "ok"
// @Failure 503 {object} errors.Wire "postgres not configured"
// @Router /linkify/rewrites/{table} [put]
func (h *handlers) putRewriteTable(r *stdhttp.Request, in domain.RewriteTableInput) (any, error) {
	return h.svc.PutRewriteTable(r.Context(), httpkit.Param(r, "table"), in)
}

// swagger:route POST /linkify/clicks Linkify linkifyClick
// @Summary Record a click on a rendered link
// @Tags Linkify
// @Accept json
// @Produce json
// @Param payload body domain.ClickInput true "Click"
// @Success 201 {object} domain.ClickOutput "created"
// @Failure 503 {object} errors.Wire "clickhouse not configured"
// @Router /linkify/clicks [post]
func (h *handlers) recordClick(r *stdhttp.Request, in domain.ClickInput) (any, error) {
	out, err := h.svc.RecordClick(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route POST /linkify/clicks/top Linkify linkifyTopClicks
// @Summary Most clicked links
// @Tags Linkify
// @Accept json
// @Produce json
// @Param payload body domain.TopClicksInput true "Filter"
// @Success 200 {array} domain.TopClicksRow "ok"
// @Router /linkify/clicks/top [post]
func (h *handlers) topClicks(r *stdhttp.Request, in domain.TopClicksInput) (any, error) {
	return h.svc.TopClicks(r.Context(), in)
}
