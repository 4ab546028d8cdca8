package patterns

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"autolink/internal/core/category"
	perr "autolink/internal/platform/errors"
)

// Matcher finds non-overlapping [start,end) byte spans in left-to-right order
type Matcher interface {
	FindAll(text string) [][2]int
	Source() string
}

// Entry is one registered category and its matchers (logical OR, run in order)
type Entry struct {
	Category category.Category
	Matchers []Matcher
}

// Registry holds the compiled matchers for an ordered set of categories.
// It is immutable after Build and safe for concurrent use
type Registry struct {
	entries []Entry
}

// Build compiles matchers for cats in order using the builtin pack.
// Repeated categories are registered once; invalid custom definitions fail fast
func Build(cats []category.Category) (*Registry, error) {
	p, err := Default()
	if err != nil {
		return nil, err
	}
	return BuildWithPack(p, cats)
}

// BuildWithPack is Build with an explicit builtin pack
func BuildWithPack(p *Pack, cats []category.Category) (*Registry, error) {
	r := &Registry{entries: make([]Entry, 0, len(cats))}
	seen := make(map[category.Category]struct{}, len(cats))
	for i, cat := range cats {
		if _, dup := seen[cat]; dup {
			continue
		}
		field := "categories[" + strconv.Itoa(i) + "]"
		if !cat.Valid() {
			return nil, perr.WithOp(perr.WithField(perr.Configf("patterns: invalid category %q", cat.Name()), field), "patterns.Build")
		}

		var ms []Matcher
		if cat.IsCustom() {
			built, err := customMatchers(cat.Custom())
			if err != nil {
				return nil, perr.WithOp(perr.WithField(err, field), "patterns.Build")
			}
			ms = built
		} else {
			for _, rule := range p.RulesFor(cat) {
				ms = append(ms, &regexMatcher{re: rule.Compiled, guard: rule.Guard})
			}
			if len(ms) == 0 {
				return nil, perr.WithOp(perr.WithField(perr.Configf("patterns: no builtin rule for %q", cat.Name()), field), "patterns.Build")
			}
		}

		seen[cat] = struct{}{}
		r.entries = append(r.entries, Entry{Category: cat, Matchers: ms})
	}
	return r, nil
}

func customMatchers(c *category.Custom) ([]Matcher, error) {
	var ms []Matcher
	for _, src := range c.Patterns {
		if strings.TrimSpace(src) == "" {
			continue
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "patterns: custom %q: compile %q", c.Name, src)
		}
		ms = append(ms, &regexMatcher{re: re})
	}

	var words []string
	for _, k := range c.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			words = append(words, k)
		}
	}
	if len(words) > 0 {
		ms = append(ms, newKeywordMatcher(words))
	}

	if len(ms) == 0 {
		return nil, perr.Configf("patterns: custom %q has no patterns or keywords", c.Name)
	}
	return ms, nil
}

// Entries returns the registered categories with their matchers in registration order
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return r.entries
}

// Categories returns the registered categories in registration order
func (r *Registry) Categories() []category.Category {
	if r == nil {
		return nil
	}
	out := make([]category.Category, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Category
	}
	return out
}

// Len reports the number of registered categories
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// regexMatcher runs a compiled regexp with an optional guard
type regexMatcher struct {
	re    *regexp.Regexp
	guard Guard
}

func (m *regexMatcher) Source() string { return m.re.String() }

func (m *regexMatcher) FindAll(text string) [][2]int {
	prs := m.re.FindAllStringIndex(text, -1)
	if len(prs) == 0 {
		return nil
	}
	out := make([][2]int, 0, len(prs))
	for _, pr := range prs {
		if pr[0] == pr[1] {
			continue
		}
		if m.guard == GuardNotAfterWord && afterWord(text, pr[0]) {
			continue
		}
		out = append(out, [2]int{pr[0], pr[1]})
	}
	return out
}

// afterWord reports whether the rune before pos is an ASCII word character
func afterWord(text string, pos int) bool {
	if pos <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// keywordMatcher finds literal keywords as whole words, ASCII case-insensitive
type keywordMatcher struct {
	ac    ahocorasick.AhoCorasick
	words []string
}

func newKeywordMatcher(words []string) *keywordMatcher {
	b := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	return &keywordMatcher{ac: b.Build(words), words: words}
}

func (m *keywordMatcher) Source() string { return "keywords(" + strings.Join(m.words, "|") + ")" }

func (m *keywordMatcher) FindAll(text string) [][2]int {
	found := m.ac.FindAll(text)
	if len(found) == 0 {
		return nil
	}
	out := make([][2]int, 0, len(found))
	for _, f := range found {
		if f.Start() < f.End() {
			out = append(out, [2]int{f.Start(), f.End()})
		}
	}
	return out
}
