package config

import (
	"reflect"
	"testing"
	"time"
)

func TestPrefixComposes(t *testing.T) {
	pg := New().Prefix("SERVICE_").Prefix("PGSQL_")
	if k := pg.Key("DBURL"); k != "SERVICE_PGSQL_DBURL" {
		t.Fatalf("key %q", k)
	}
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://localhost/autolink ")
	if got := pg.MayString("DBURL", ""); got != "postgres://localhost/autolink" {
		t.Fatalf("value %q", got)
	}
}

func TestMayDefaultsWhenUnsetOrBlank(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_BLANK", "   ")
	if c.MayString("BLANK", "d") != "d" || c.MayString("UNSET_X", "d") != "d" {
		t.Fatalf("blank and unset must use the default")
	}
	if c.MayInt("UNSET_X", 7) != 7 || !c.MayBool("UNSET_X", true) || c.MayDuration("UNSET_X", time.Second) != time.Second {
		t.Fatalf("typed defaults")
	}
}

func TestMayParsed(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_THROTTLE", "64")
	t.Setenv("CORE_API_SWAGGER", "false")
	t.Setenv("CORE_API_TIMEOUT", "250ms")
	t.Setenv("CORE_API_SLOW", "soon")
	t.Setenv("CORE_API_PROFILER", "maybe")

	if got := c.MayInt("THROTTLE", 0); got != 64 {
		t.Fatalf("int %d", got)
	}
	if c.MayBool("SWAGGER", true) {
		t.Fatalf("bool not parsed")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("duration %v", got)
	}
	if got := c.MayDuration("SLOW", 500*time.Millisecond); got != 500*time.Millisecond {
		t.Fatalf("invalid duration must fall back, got %v", got)
	}
	if c.MayBool("PROFILER", false) {
		t.Fatalf("invalid bool must fall back")
	}
}

func TestMayCSV(t *testing.T) {
	c := New()
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example,")
	want := []string{"https://a.example", "https://b.example"}
	if got := c.MayCSV("CORS_ORIGINS", nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("csv %q", got)
	}
	t.Setenv("CORS_ORIGINS", " , ")
	if got := c.MayCSV("CORS_ORIGINS", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("all blank must fall back, got %q", got)
	}
}

func TestMayAddr(t *testing.T) {
	c := New()
	cases := map[string]string{
		"4000":           ":4000",
		":8080":          ":8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
		"70000":          ":4000",
		"http":           ":4000",
		"":               ":4000",
	}
	for in, want := range cases {
		t.Setenv("PORT", in)
		if got := c.MayAddr("PORT", ":4000"); got != want {
			t.Fatalf("MayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
