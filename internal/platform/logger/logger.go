// Package logger owns the process wide zerolog root. Packages log through Named(component),
// request handlers through C(ctx) so lines carry the request id
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"autolink/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project logger type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string    // trace|debug|info|warn|error, unknown means info
	Format      string    // console or json
	Service     string    // added as "service" when set
	Writer      io.Writer // os.Stdout when nil
	Caller      bool
	SampleEvery int // keep one line in N when > 1
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	r := raw.Env("LOG_")
	return Options{
		Level:       r.String("LEVEL", "info"),
		Format:      strings.ToLower(r.String("FORMAT", "console")),
		Service:     r.String("SERVICE", ""),
		Caller:      r.Bool("CALLER", false),
		SampleEvery: r.Int("SAMPLE_EVERY", 0),
	}
}

// Build returns a logger for o without installing it
func (o Options) Build() Logger {
	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	if o.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zc := zerolog.New(w).Level(level(o.Level)).With().Timestamp()
	if o.Service != "" {
		zc = zc.Str("service", o.Service)
	}
	if o.Caller {
		zc = zc.Caller()
	}
	l := zc.Logger()
	if o.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(o.SampleEvery)})
	}
	return l
}

func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

var root atomic.Pointer[Logger]

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Init installs the root logger built from o. Mains call it once before anything logs
func Init(o Options) {
	l := o.Build()
	root.Store(&l)
}

// Get returns the root logger, installing one from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l := FromEnv().Build()
	root.CompareAndSwap(nil, &l)
	return root.Load()
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type requestIDKey struct{}

// WithRequest stores the request id C attaches to log lines; empty ids are ignored
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// C returns the root logger, tagged with the request id when ctx carries one
func C(ctx context.Context) *Logger {
	id, _ := ctx.Value(requestIDKey{}).(string)
	if id == "" {
		return Get()
	}
	l := Get().With().Str("request_id", id).Logger()
	return &l
}
