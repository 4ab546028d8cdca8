// Package scanner runs every registered category over a text and produces raw link items
package scanner

import (
	"strings"
	"unicode"

	"autolink/internal/core/category"
	"autolink/internal/core/normalize"
	"autolink/internal/core/patterns"
	"autolink/internal/core/validate"
	"autolink/internal/platform/logger"
)

// Item is one categorized match. Start and End are [start,end) byte offsets; after a
// transform pass they refer to the display text, before it to the scanned text
type Item struct {
	Start    int
	End      int
	Original string // exact matched text (URL leading whitespace trimmed)
	Display  string // text shown in place of Original; equals Original unless rewritten
	Category category.Category
	Seq      int // discovery order, breaks Start ties
}

// Rewritten reports whether the item displays different text than it matched
func (it Item) Rewritten() bool { return it.Original != it.Display }

// Options controls scanner behavior
type Options struct {
	// Rewrites is a static original -> display table; consulted for every category
	Rewrites map[string]string
	// Rewrite maps a URL to its display text; called at most once per distinct URL per Scan
	Rewrite func(string) string
	// SkipCodeZones drops matches overlapping fenced or inline code
	SkipCodeZones bool
	// MaxItems is the hard cap on emitted items (0 = no cap)
	MaxItems int
	// Log receives filtering outcomes at debug level; nil uses the "scanner" component logger
	Log *logger.Logger
}

// Scanner runs a registry over text. It holds no per-text state and is safe for concurrent use
type Scanner struct {
	reg  *patterns.Registry
	opts Options
	log  *logger.Logger
}

// New creates a Scanner over reg
func New(reg *patterns.Registry, opts Options) *Scanner {
	s := &Scanner{reg: reg, opts: opts, log: opts.Log}
	if s.log == nil {
		s.log = logger.Named("scanner")
	}
	return s
}

// pass is the state of one Scan call
type pass struct {
	s     *Scanner
	cache map[string]string // trimmed URL -> rewrite result
}

// Scan returns items in discovery order: categories in registration order, matchers in
// order within a category, matches left to right within a matcher
func (s *Scanner) Scan(text string) []Item {
	if text == "" || s.reg.Len() == 0 {
		return nil
	}

	var zones normalize.Zones
	if s.opts.SkipCodeZones {
		zones = normalize.DetectZones(text)
	}

	p := &pass{s: s}
	var items []Item
	if s.opts.MaxItems > 0 {
		items = make([]Item, 0, s.opts.MaxItems)
	}

	for _, e := range s.reg.Entries() {
		for _, m := range e.Matchers {
			for _, sp := range m.FindAll(text) {
				if s.opts.MaxItems > 0 && len(items) >= s.opts.MaxItems {
					s.log.Debug().Int("max_items", s.opts.MaxItems).Msg("scanner: item cap reached")
					return items
				}
				start, end := sp[0], sp[1]
				if zones.Overlaps(start, end) {
					s.log.Debug().Str("category", e.Category.Name()).Int("start", start).Msg("scanner: match inside code zone skipped")
					continue
				}

				orig := text[start:end]
				var display string
				switch e.Category.Kind {
				case category.KindURL:
					trimmed := strings.TrimLeftFunc(orig, unicode.IsSpace)
					if trimmed == "" {
						continue
					}
					start += len(orig) - len(trimmed)
					orig = trimmed
					display = p.rewriteURL(orig)
				case category.KindPhone:
					if !validate.Accepts(e.Category, orig) {
						s.log.Debug().Str("match", orig).Int("digits", validate.Digits(orig)).Msg("scanner: phone rejected by digit count")
						continue
					}
					display = orig
				default:
					display = s.static(orig)
				}

				items = append(items, Item{
					Start:    start,
					End:      end,
					Original: orig,
					Display:  display,
					Category: e.Category,
					Seq:      len(items),
				})
			}
		}
	}
	return items
}

// static returns the table mapping for s, or s itself
func (s *Scanner) static(orig string) string {
	if v, ok := s.opts.Rewrites[orig]; ok && v != "" {
		return v
	}
	return orig
}

// rewriteURL resolves the display text of a URL: static table, then the per-pass cache,
// then one call of the rewrite function. Empty results leave the URL as is
func (p *pass) rewriteURL(u string) string {
	if v, ok := p.s.opts.Rewrites[u]; ok && v != "" {
		return v
	}
	if p.s.opts.Rewrite == nil {
		return u
	}
	if v, ok := p.cache[u]; ok {
		return v
	}
	v := p.s.opts.Rewrite(u)
	if v == "" {
		v = u
	}
	if p.cache == nil {
		p.cache = make(map[string]string, 8)
	}
	p.cache[u] = v
	return v
}
