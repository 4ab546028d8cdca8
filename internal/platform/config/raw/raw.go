// Package raw reads env vars without logging. The logger configures itself through it,
// so it cannot use package config
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Reader looks up prefixed keys in an environment
type Reader struct {
	prefix string
	env    func(string) string
}

// Env reads the process environment under prefix
func Env(prefix string) Reader { return Reader{prefix: prefix, env: os.Getenv} }

// Map reads m under prefix; used where the process env must stay untouched
func Map(prefix string, m map[string]string) Reader {
	return Reader{prefix: prefix, env: func(k string) string { return m[k] }}
}

func (r Reader) get(k string) string { return strings.TrimSpace(r.env(r.prefix + k)) }

// String returns k or def when blank
func (r Reader) String(k, def string) string {
	if v := r.get(k); v != "" {
		return v
	}
	return def
}

// Bool accepts strconv.ParseBool forms plus yes/no and on/off; anything else is def
func (r Reader) Bool(k string, def bool) bool {
	switch v := strings.ToLower(r.get(k)); v {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	default:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		return def
	}
}

// Int returns k when it is a non negative integer, def otherwise
func (r Reader) Int(k string, def int) int {
	n, err := strconv.Atoi(r.get(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}
