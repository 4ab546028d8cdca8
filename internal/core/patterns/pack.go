// Package patterns loads the builtin link patterns and compiles per-category matchers.
// Builtin rules ship in the embedded patterns.json; custom categories compile at Build time
package patterns

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"autolink/internal/core/category"
)

//go:embed patterns.json
var embedded []byte

// PackVersion is the patterns.json schema version this package understands
const PackVersion = 1

type rawRule struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	Pattern         string   `json:"pattern"`
	Guard           string   `json:"guard,omitempty"`
	Examples        []string `json:"examples,omitempty"`
	CounterExamples []string `json:"counter_examples,omitempty"`
}

type rawPack struct {
	Version int            `json:"version"`
	Meta    map[string]any `json:"meta"`
	Rules   []rawRule      `json:"rules"`
}

// Guard names an extra positional check applied to each regex match
type Guard string

const (
	// GuardNone accepts every match
	GuardNone Guard = ""
	// GuardNotAfterWord rejects a match directly preceded by [A-Za-z0-9_]
	GuardNotAfterWord Guard = "not_after_word"
)

// Rule is one compiled builtin rule
type Rule struct {
	ID              string
	Category        category.Category
	Pattern         string
	Guard           Guard
	Compiled        *regexp.Regexp
	Examples        []string
	CounterExamples []string
}

// Pack is the compiled builtin rule set
type Pack struct {
	Version int
	Meta    map[string]any
	Rules   []Rule // sorted by category kind then id
}

// Load returns the compiled pack from the embedded patterns.json
func Load() (*Pack, error) {
	return parse(embedded)
}

var loadOnce = sync.OnceValues(Load)

// Default returns the process-wide builtin pack, compiled once
func Default() (*Pack, error) { return loadOnce() }

func parse(raw []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, fmt.Errorf("patterns: parse patterns.json: %w", err)
	}
	if rp.Version != PackVersion {
		return nil, fmt.Errorf("patterns: unsupported patterns.json version %d (want %d)", rp.Version, PackVersion)
	}

	p := &Pack{Version: rp.Version, Meta: rp.Meta}
	for _, r := range rp.Rules {
		cat, ok := category.Parse(r.Category)
		if !ok {
			return nil, fmt.Errorf("patterns: rule %q: unknown category %q", r.ID, r.Category)
		}
		g := Guard(strings.TrimSpace(r.Guard))
		if g != GuardNone && g != GuardNotAfterWord {
			return nil, fmt.Errorf("patterns: rule %q: unknown guard %q", r.ID, r.Guard)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("patterns: compile %q: %w", r.ID, err)
		}
		p.Rules = append(p.Rules, Rule{
			ID:              r.ID,
			Category:        cat,
			Pattern:         r.Pattern,
			Guard:           g,
			Compiled:        re,
			Examples:        r.Examples,
			CounterExamples: r.CounterExamples,
		})
	}

	// deterministic order for lookups and tests
	sort.SliceStable(p.Rules, func(i, j int) bool {
		if p.Rules[i].Category.Kind != p.Rules[j].Category.Kind {
			return p.Rules[i].Category.Kind < p.Rules[j].Category.Kind
		}
		return p.Rules[i].ID < p.Rules[j].ID
	})
	return p, nil
}

// RulesFor returns the builtin rules for cat in pack order
func (p *Pack) RulesFor(cat category.Category) []Rule {
	if p == nil {
		return nil
	}
	var out []Rule
	for _, r := range p.Rules {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}
