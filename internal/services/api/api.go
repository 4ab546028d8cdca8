// Package api assembles the autolink http api: meta and linkify under
// /api/v1, plus the optional docs and profiler outside the versioned stack
package api

import (
	"autolink/internal/modkit"
	"autolink/internal/modkit/httpkit"
	"autolink/internal/modkit/swaggerkit"
	"autolink/internal/platform/config"
	"autolink/internal/platform/logger"
	phttp "autolink/internal/platform/net/http"
	"autolink/internal/platform/store"
	linkifymod "autolink/internal/services/api/linkify/module"
	metamod "autolink/internal/services/api/meta/module"
)

type Options struct {
	Config   config.Conf
	Store    *store.Store // nil or partially open: the affected endpoints answer 503
	Log      logger.Logger
	Swagger  bool
	Profiler bool
}

// Mount registers everything on r and returns the mounted modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	deps := modkit.Deps{Log: opt.Log, Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG, deps.CH = opt.Store.PG, opt.Store.CH
	}
	mods := []modkit.Module{metamod.New(deps), linkifymod.New(deps)}

	swaggerkit.Mount(r, opt.Config, opt.Swagger)
	phttp.MountProfiler(r, "/debug", opt.Profiler)
	httpkit.MountV1(r, httpkit.StackFromConfig(opt.Config), func(v1 httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(v1)
			opt.Log.Debug().Str("module", m.Name()).Str("prefix", m.Prefix()).Msg("module mounted")
		}
	})
	return mods
}
