// Package config reads settings from the environment through prefixed views.
// cmd/autolink-api uses three: CORE_API_, SERVICE_PGSQL_ and SERVICE_CLICKHOUSE_
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"autolink/internal/platform/logger"
)

// Conf is a view over env vars sharing a prefix. The zero value reads unprefixed keys
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes concatenate
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the env var name k resolves to
func (c Conf) Key(k string) string { return c.prefix + k }

// lookup returns the trimmed value of k; blank counts as unset
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(k)))
	return v, v != ""
}

// parsed reads k with parse, falling back to def when unset or unparsable
func parsed[T any](c Conf, k string, def T, kind string, parse func(string) (T, error)) T {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(k)).Str("value", s).Any("default", def).Msgf("config: invalid %s, using default", kind)
		return def
	}
	return v
}

// MayString returns k or def
func (c Conf) MayString(k, def string) string {
	if s, ok := c.lookup(k); ok {
		return s
	}
	return def
}

// MayInt returns k as an int or def
func (c Conf) MayInt(k string, def int) int {
	return parsed(c, k, def, "int", strconv.Atoi)
}

// MayBool returns k as a bool (strconv.ParseBool forms) or def
func (c Conf) MayBool(k string, def bool) bool {
	return parsed(c, k, def, "bool", strconv.ParseBool)
}

// MayDuration returns k as a time.Duration ("250ms", "30s") or def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return parsed(c, k, def, "duration", time.ParseDuration)
}

// MayCSV splits k on commas dropping blanks; def when nothing is left
func (c Conf) MayCSV(k string, def []string) []string {
	s, ok := c.lookup(k)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayAddr returns k as a listen address. A bare port "4000" becomes ":4000";
// ports outside 1..65535 fall back to def
func (c Conf) MayAddr(k, def string) string {
	return parsed(c, k, def, "listen address", parseAddr)
}

func parseAddr(s string) (string, error) {
	if !strings.Contains(s, ":") {
		s = ":" + s
	}
	_, port, err := net.SplitHostPort(s)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return "", err
	}
	if n < 1 || n > 65535 {
		return "", strconv.ErrRange
	}
	return s, nil
}
