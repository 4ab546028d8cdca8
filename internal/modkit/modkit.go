// Package modkit declares api modules. A module is a name, a route prefix
// under /api/v1 and a function that registers its routes
package modkit

import (
	"net/http"
	"strings"

	"autolink/internal/modkit/httpkit"
	"autolink/internal/modkit/repokit"
	"autolink/internal/platform/config"
	"autolink/internal/platform/logger"
	"autolink/internal/platform/store"
)

// Deps is what every module constructor receives. PG and CH are nil when
// the backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Module is a mountable group of routes
type Module interface {
	Name() string
	Prefix() string
	MountRoutes(r httpkit.Router)
}

// Option adjusts a module at construction
type Option func(*module)

// WithPrefix overrides the module's default prefix
func WithPrefix(prefix string) Option {
	return func(m *module) { m.prefix = prefix }
}

// WithMiddlewares wraps only this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(m *module) { m.mw = append(m.mw, mw...) }
}

// WithRoutes registers extra routes next to the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(m *module) { m.routes = append(m.routes, fn) }
}

type module struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	routes []func(httpkit.Router)
}

// New returns a module mounting routes under prefix. It panics on an empty
// name or a prefix that normalizes to "/", both wiring mistakes
func New(name, prefix string, routes func(httpkit.Router), opts ...Option) Module {
	m := &module{name: strings.TrimSpace(name), prefix: prefix, routes: []func(httpkit.Router){routes}}
	for _, o := range opts {
		o(m)
	}
	m.prefix = "/" + strings.Trim(strings.TrimSpace(m.prefix), "/")
	if m.name == "" || m.prefix == "/" {
		panic("modkit: module needs a name and a non-root prefix")
	}
	return m
}

func (m *module) Name() string   { return m.name }
func (m *module) Prefix() string { return m.prefix }

func (m *module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(sub httpkit.Router) {
		sub.Use(m.mw...)
		for _, fn := range m.routes {
			fn(sub)
		}
	})
}
