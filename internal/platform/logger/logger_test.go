package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	kit "autolink/internal/platform/testkit"
)

func TestLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		" DEBUG ":  zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Fatalf("level(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild_JSONLevelAndService(t *testing.T) {
	var buf bytes.Buffer
	l := Options{Level: "warn", Format: "json", Service: "autolink", Writer: &buf}.Build()
	l.Info().Msg("dropped")
	l.Warn().Str("category", "phone").Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line below warn level:\n%s", out)
	}
	kit.MustContain(t, out, `"service":"autolink"`)
	kit.MustContain(t, out, `"category":"phone"`)
}

func TestInit_NamedAndRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	Named("scanner").Debug().Msg("scanned")
	C(WithRequest(context.Background(), "req-123")).Info().Msg("linkified")
	C(context.Background()).Info().Msg("bare")

	out := buf.String()
	kit.MustContain(t, out, `"component":"scanner"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"message":"bare"`)
	if strings.Count(out, "request_id") != 1 {
		t.Fatalf("request_id on unscoped lines:\n%s", out)
	}
	if Get() != root.Load() {
		t.Fatalf("Get must return the installed root")
	}
}

func TestWithRequest_EmptyID(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx {
		t.Fatalf("empty id must keep ctx")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "autolink-api")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	o := FromEnv()
	if o.Level != "WARN" || o.Format != "json" || o.Service != "autolink-api" || !o.Caller || o.SampleEvery != 5 {
		t.Fatalf("options %+v", o)
	}
}
