package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"autolink/internal/platform/config"
	"autolink/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Stack tunes the /api/v1 middleware chain
type Stack struct {
	Origins  []string      // CORS origins, none when empty
	Throttle int           // in flight cap, 0 disables
	Slow     time.Duration // access log warn threshold
	Timeout  time.Duration // per request deadline
}

// StackFromConfig reads CORS_ORIGINS, THROTTLE, SLOW (500ms) and TIMEOUT (30s)
func StackFromConfig(cfg config.Conf) Stack {
	return Stack{
		Origins:  cfg.MayCSV("CORS_ORIGINS", nil),
		Throttle: cfg.MayInt("THROTTLE", 0),
		Slow:     cfg.MayDuration("SLOW", 500*time.Millisecond),
		Timeout:  cfg.MayDuration("TIMEOUT", 30*time.Second),
	}
}

// Middlewares returns the chain in order: ids, logging, recovery, then the
// request shaping the linkify endpoints rely on
func (s Stack) Middlewares() []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		middleware.AccessLog(s.Slow),
		middleware.Recover,
		chimw.NoCache,
		middleware.CORS(s.Origins),
		chimw.Compress(flate.BestSpeed),
		chimw.StripSlashes,
	}
	if s.Timeout > 0 {
		mw = append(mw, chimw.Timeout(s.Timeout))
	}
	if s.Throttle > 0 {
		mw = append(mw, chimw.Throttle(s.Throttle))
	}
	return mw
}

const v1 = "/api/v1"

// MountV1 mounts the stack and whatever mount registers under /api/v1.
// GET /api/v1/health answers before any of the stack runs
func MountV1(r Router, s Stack, mount func(api Router)) {
	r.Route(v1, func(api Router) {
		api.Use(chimw.Heartbeat(v1 + "/health"))
		api.Use(s.Middlewares()...)
		mount(api)
	})
}
