package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"autolink/internal/core/version"
	"autolink/internal/platform/config"
	"autolink/internal/platform/logger"
	phttp "autolink/internal/platform/net/http"
	"autolink/internal/platform/store"

	"autolink/internal/services/api"
	linkrepo "autolink/internal/services/api/linkify/repo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	logOpts := logger.FromEnv()
	if logOpts.Service == "" {
		logOpts.Service = "autolink-api"
	}
	logger.Init(logOpts)
	l := logger.Get()

	// both stores are optional; endpoints that need one answer 503 without it
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(ctx, store.Config{
		AppName: "autolink-api",
		PG: store.PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQuery:      pgCfg.MayDuration("SLOW_QUERY", 500*time.Millisecond),
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
		},
		CH: store.CHConfig{
			Enabled: chURL != "",
			URL:     chURL,
			Role:    "api",
			Tag:     version.Info().Version,
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if st.PG != nil && pgCfg.MayBool("AUTO_MIGRATE", true) {
		if err := linkrepo.EnsurePG(ctx, st.PG); err != nil {
			l.Panic().Err(err).Msg("url_rewrites schema failed")
		}
	}
	if st.CH != nil && chCfg.MayBool("AUTO_MIGRATE", true) {
		if err := linkrepo.EnsureCH(ctx, st.CH); err != nil {
			l.Panic().Err(err).Msg("link_clicks schema failed")
		}
	}
	if err := st.Guard(ctx); err != nil {
		l.Warn().Err(err).Msg("store guard failed, continuing degraded")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)
	mods := api.Mount(srv.Router(), api.Options{
		Config:   apiCfg,
		Store:    st,
		Log:      l,
		Swagger:  apiCfg.MayBool("SWAGGER", true),
		Profiler: apiCfg.MayBool("PROFILER", false),
	})
	l.Info().Int("modules", len(mods)).Bool("pg", st.PG != nil).Bool("ch", st.CH != nil).Msg("autolink api ready")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
