// Package module assembles linkify: the service over the optional stores, mounted at /linkify
package module

import (
	"autolink/internal/modkit"
	"autolink/internal/modkit/httpkit"
	linkhttp "autolink/internal/services/api/linkify/http"
	linkrepo "autolink/internal/services/api/linkify/repo"
	linksvc "autolink/internal/services/api/linkify/service"
)

// New builds the linkify module. Rewrite tables need deps.PG and click
// events deps.CH; without them those endpoints answer 503
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	log := deps.Log.With().Str("component", "linkify").Logger()
	svc := linksvc.New(deps.PG, linkrepo.NewPG(),
		linksvc.WithClicks(linkrepo.NewCH(deps.CH)),
		linksvc.WithLogger(&log),
	)
	log.Debug().Bool("pg", deps.PG != nil).Bool("ch", deps.CH != nil).Msg("linkify module built")

	return modkit.New("linkify", "/linkify", func(r httpkit.Router) { linkhttp.Register(r, svc) }, opts...)
}
