// Package autolink is the embeddable linkify engine: configure categories and hooks once,
// then run one pass per text to get the display text and its positioned link items
package autolink

import (
	"maps"

	"autolink/internal/core/category"
	"autolink/internal/core/linkset"
	"autolink/internal/core/normalize"
	"autolink/internal/core/patterns"
	"autolink/internal/core/scanner"
	"autolink/internal/core/transform"
	"autolink/internal/platform/logger"
)

// Item is a positioned link item over the display text
type Item = linkset.Item

// Style is opaque presentation data passed through to consumers
type Style struct {
	Decorations []string `json:"decorations,omitempty"`
	Highlight   string   `json:"highlight,omitempty"`
}

// Config is the immutable engine configuration
type Config struct {
	// Categories to detect; order is the scan order
	Categories []category.Category
	// Styles per category; categories without an entry get the zero Style
	Styles map[category.Category]Style
	// CleanInput drops control and format characters and NFC-normalizes before scanning
	CleanInput bool
	// SkipCodeZones ignores matches inside fenced or inline code
	SkipCodeZones bool
	// Strict turns offset invariant violations into errors instead of clamping
	Strict bool
	// MaxItems caps the number of items per pass (0 = no cap)
	MaxItems int
}

// Option configures optional hooks
type Option func(*Engine)

// WithRewrite attaches the URL rewrite function. It is called at most once per distinct URL per pass
func WithRewrite(fn func(string) string) Option {
	return func(e *Engine) { e.rewrite = fn }
}

// WithRewrites attaches a static original -> display table. Table entries win over the rewrite function
func WithRewrites(table map[string]string) Option {
	return func(e *Engine) {
		if e.rewrites == nil {
			e.rewrites = make(map[string]string, len(table))
		}
		maps.Copy(e.rewrites, table)
	}
}

// WithClick attaches the handler Result.Click dispatches to
func WithClick(fn func(Item)) Option {
	return func(e *Engine) { e.click = fn }
}

// WithLogger overrides the engine logger
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine runs linkify passes. It is immutable after New and safe for concurrent use
type Engine struct {
	cfg      Config
	reg      *patterns.Registry
	scan     *scanner.Scanner
	rewrites map[string]string
	rewrite  func(string) string
	click    func(Item)
	log      *logger.Logger
}

// New validates cfg and compiles all category patterns. Configuration errors carry perr.ErrorCodeConfig
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = logger.Named("autolink")
	}

	reg, err := patterns.Build(cfg.Categories)
	if err != nil {
		return nil, err
	}
	e.reg = reg
	e.cfg.Categories = reg.Categories()
	e.cfg.Styles = maps.Clone(cfg.Styles)
	e.scan = scanner.New(reg, scanner.Options{
		Rewrites:      e.rewrites,
		Rewrite:       e.rewrite,
		SkipCodeZones: cfg.SkipCodeZones,
		MaxItems:      cfg.MaxItems,
		Log:           e.log,
	})
	return e, nil
}

// Categories returns the registered categories in scan order
func (e *Engine) Categories() []category.Category {
	return append([]category.Category(nil), e.cfg.Categories...)
}

// Style returns the configured style of cat
func (e *Engine) Style(cat category.Category) Style { return e.cfg.Styles[cat] }

// SetText runs one full pass over text: clean (optional), scan, transform, collect.
// Empty text or no categories yields text unchanged and an empty set. The error is
// non-nil only for offset invariant violations in Strict mode
func (e *Engine) SetText(text string) (*Result, error) {
	if e.cfg.CleanInput {
		text = normalize.Clean(text)
	}
	res := &Result{Text: text, Display: text, engine: e}
	if text == "" || e.reg.Len() == 0 {
		res.Set = linkset.New(text, nil)
		return res, nil
	}

	items := e.scan.Scan(text)
	display, items, err := transform.Apply(text, items, transform.Options{Strict: e.cfg.Strict, Log: e.log})
	if err != nil {
		return nil, err
	}
	res.Display = display
	res.Set = linkset.New(display, items)

	if ov := res.Set.Overlaps(); len(ov) > 0 {
		e.log.Debug().Int("overlaps", len(ov)).Int("items", res.Set.Len()).Msg("autolink: overlapping items kept")
	}
	return res, nil
}
