package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"autolink/internal/platform/config"
	"autolink/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server serves one chi mux until its context ends
type Server struct {
	mux   *chi.Mux
	http  *stdhttp.Server
	grace time.Duration
}

// NewServer reads PORT (default :4000) and SHUTDOWN_GRACE (default 10s) from cfg
func NewServer(cfg config.Conf) *Server {
	mux := chi.NewRouter()
	return &Server{
		mux:   mux,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		http: &stdhttp.Server{
			Addr:              cfg.MayAddr("PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }

func (s *Server) Addr() string { return s.http.Addr }

// Run blocks until ctx is done or the listener fails. On ctx end in-flight
// requests get the grace period to finish
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	failed := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("http listening")
		failed <- s.http.ListenAndServe()
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("http draining")
	drain, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.http.Shutdown(drain); err != nil {
		return err
	}
	if err := <-failed; !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
