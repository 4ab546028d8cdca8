// Package service contains linkify workflows
package service

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"time"

	"autolink/internal/core/autolink"
	"autolink/internal/core/category"
	"autolink/internal/core/patterns"
	"autolink/internal/modkit/repokit"
	perr "autolink/internal/platform/errors"
	"autolink/internal/platform/logger"
	"autolink/internal/services/api/linkify/domain"
	"autolink/internal/services/api/linkify/repo"

	"github.com/google/uuid"
)

const (
	defaultTopLimit = 20
	maxTxAttempts   = 3
)

var tableName = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// Service defines the linkify service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the linkify service
// Repo and clicks are nil when postgres or clickhouse are not configured
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	clicks repo.Clicks

	log   *logger.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures optional service collaborators
type Option func(*Svc)

// WithClicks attaches the click event sink
func WithClicks(c repo.Clicks) Option { return func(s *Svc) { s.clicks = c } }

// WithLogger overrides the service logger
func WithLogger(l *logger.Logger) Option { return func(s *Svc) { s.log = l } }

// WithClock overrides the clock and id source used for click events
func WithClock(now func() time.Time, newID func() uuid.UUID) Option {
	return func(s *Svc) {
		s.now = now
		s.newID = newID
	}
}

// New constructs a linkify service, db may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if binder == nil {
		panic("linkify.Service requires a non nil Repo binder")
	}
	s := &Svc{binder: binder, db: db, now: time.Now, newID: uuid.New}
	if db != nil {
		s.Repo = binder.Bind(db)
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("linkify")
	}
	return s
}

// Linkify runs one pass with a per-request engine
func (s *Svc) Linkify(ctx context.Context, in domain.LinkifyInput) (domain.LinkifyOutput, error) {
	cats, err := resolveCategories(in)
	if err != nil {
		return domain.LinkifyOutput{}, err
	}
	styles, err := resolveStyles(in.Styles, cats)
	if err != nil {
		return domain.LinkifyOutput{}, err
	}
	table, err := s.rewrites(ctx, in)
	if err != nil {
		return domain.LinkifyOutput{}, err
	}

	eng, err := autolink.New(autolink.Config{
		Categories:    cats,
		Styles:        styles,
		CleanInput:    in.CleanInput,
		SkipCodeZones: in.SkipCodeZones,
		Strict:        in.Strict,
		MaxItems:      in.MaxItems,
	}, autolink.WithRewrites(table), autolink.WithLogger(s.log))
	if err != nil {
		return domain.LinkifyOutput{}, err
	}

	res, err := eng.SetText(in.Text)
	if err != nil {
		return domain.LinkifyOutput{}, err
	}
	return toOutput(res), nil
}

// Categories lists the builtin categories and their rules
func (s *Svc) Categories(_ context.Context) (domain.CategoriesOutput, error) {
	pack, err := patterns.Default()
	if err != nil {
		return domain.CategoriesOutput{}, perr.Wrap(err, perr.ErrorCodeConfig, "load pattern pack")
	}
	out := domain.CategoriesOutput{PackVersion: pack.Version}
	for _, c := range category.Builtins() {
		info := domain.CategoryInfo{Name: c.Name()}
		for _, r := range pack.RulesFor(c) {
			info.Rules = append(info.Rules, domain.Rule{ID: r.ID, Pattern: r.Pattern, Guard: string(r.Guard)})
		}
		out.Categories = append(out.Categories, info)
	}
	return out, nil
}

// RewriteTable returns a stored rewrite table
func (s *Svc) RewriteTable(ctx context.Context, table string) (domain.RewriteTableOutput, error) {
	if err := checkTable(table, "table"); err != nil {
		return domain.RewriteTableOutput{}, err
	}
	entries, err := s.loadTable(ctx, table)
	if err != nil {
		return domain.RewriteTableOutput{}, err
	}
	return domain.RewriteTableOutput{Table: table, Entries: entries}, nil
}

// PutRewriteTable upserts entries into a rewrite table, replacing it first when asked
func (s *Svc) PutRewriteTable(ctx context.Context, table string, in domain.RewriteTableInput) (domain.RewriteTableOutput, error) {
	if err := checkTable(table, "table"); err != nil {
		return domain.RewriteTableOutput{}, err
	}
	if s.db == nil {
		return domain.RewriteTableOutput{}, perr.Unavailablef("rewrite tables need postgres")
	}

	var (
		entries map[string]string
		err     error
	)
	tx := repokit.WithBeginHooks(s.db, repo.LockTable(table))
	for attempt := 1; ; attempt++ {
		err = repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
			r := s.binder.Bind(q)
			if in.Replace {
				if _, err := r.DeleteTable(ctx, table); err != nil {
					return err
				}
			}
			n, err := r.UpsertRewrites(ctx, table, in.Entries)
			if err != nil {
				return err
			}
			entries, err = r.Rewrites(ctx, table)
			s.log.Debug().Str("table", table).Int64("rows", n).Bool("replace", in.Replace).Msg("rewrite table stored")
			return err
		})
		if err == nil || attempt == maxTxAttempts || !perr.Retryable(err) {
			break
		}
		s.log.Warn().Err(err).Str("table", table).Int("attempt", attempt).Msg("rewrite table tx retry")
	}
	if err != nil {
		return domain.RewriteTableOutput{}, perr.FromPostgres(err, "store rewrite table")
	}
	return domain.RewriteTableOutput{Table: table, Entries: entries}, nil
}

// RecordClick appends one click event
func (s *Svc) RecordClick(ctx context.Context, in domain.ClickInput) (domain.ClickOutput, error) {
	if s.clicks == nil {
		return domain.ClickOutput{}, perr.Unavailablef("click events need clickhouse")
	}
	row := repo.ClickRow{
		ID:       s.newID(),
		At:       s.now().UTC(),
		Category: in.Category,
		Original: in.Original,
		Display:  in.Display,
		Offset:   uint32(in.Offset),
		Source:   in.Source,
	}
	if err := s.clicks.Insert(ctx, []repo.ClickRow{row}); err != nil {
		return domain.ClickOutput{}, perr.Wrap(err, perr.ErrorCodeDB, "record click")
	}
	return domain.ClickOutput{ID: row.ID.String(), At: row.At.Format(time.RFC3339)}, nil
}

// TopClicks returns the most clicked links
func (s *Svc) TopClicks(ctx context.Context, in domain.TopClicksInput) ([]domain.TopClicksRow, error) {
	if s.clicks == nil {
		return nil, perr.Unavailablef("click events need clickhouse")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	rows, err := s.clicks.Top(ctx, in.Category, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "top clicks")
	}
	out := make([]domain.TopClicksRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TopClicksRow{Original: r.Original, Category: r.Category, Clicks: r.Clicks})
	}
	return out, nil
}

// rewrites merges the stored table (if named) with inline rewrites, inline entries win
func (s *Svc) rewrites(ctx context.Context, in domain.LinkifyInput) (map[string]string, error) {
	if in.RewriteTable == "" {
		return in.Rewrites, nil
	}
	if err := checkTable(in.RewriteTable, "rewrite_table"); err != nil {
		return nil, err
	}
	out, err := s.loadTable(ctx, in.RewriteTable)
	if err != nil {
		return nil, err
	}
	maps.Copy(out, in.Rewrites)
	return out, nil
}

func (s *Svc) loadTable(ctx context.Context, table string) (map[string]string, error) {
	if s.Repo == nil {
		return nil, perr.Unavailablef("rewrite tables need postgres")
	}
	entries, err := s.Repo.Rewrites(ctx, table)
	if err != nil {
		return nil, perr.FromPostgres(err, "load rewrite table")
	}
	if len(entries) == 0 {
		return nil, perr.NotFoundf("rewrite table %q not found", table)
	}
	return entries, nil
}

// resolveCategories resolves builtin names and custom definitions in request order
func resolveCategories(in domain.LinkifyInput) ([]category.Category, error) {
	if len(in.Categories) == 0 && len(in.Custom) == 0 {
		return category.Builtins(), nil
	}
	out := make([]category.Category, 0, len(in.Categories)+len(in.Custom))
	names := make(map[string]struct{}, cap(out))
	for i, n := range in.Categories {
		c, ok := category.Parse(n)
		if !ok {
			return nil, perr.WithField(perr.Configf("unknown category %q", n), fmt.Sprintf("categories[%d]", i))
		}
		names[c.Name()] = struct{}{}
		out = append(out, c)
	}
	for i, ci := range in.Custom {
		c := category.NewCustomWithKeywords(ci.Name, ci.Patterns, ci.Keywords)
		if _, builtin := category.Parse(c.Name()); builtin {
			return nil, perr.WithField(perr.Configf("custom category %q shadows a builtin", c.Name()), fmt.Sprintf("custom[%d].name", i))
		}
		if _, dup := names[c.Name()]; dup {
			return nil, perr.WithField(perr.Configf("duplicate custom category %q", c.Name()), fmt.Sprintf("custom[%d].name", i))
		}
		names[c.Name()] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// resolveStyles keys request styles by category, unknown names are config errors
func resolveStyles(in map[string]domain.Style, cats []category.Category) (map[category.Category]autolink.Style, error) {
	if len(in) == 0 {
		return nil, nil
	}
	byName := make(map[string]category.Category, len(cats))
	for _, c := range cats {
		byName[c.Name()] = c
	}
	out := make(map[category.Category]autolink.Style, len(in))
	for name, st := range in {
		c, ok := byName[name]
		if !ok {
			if b, builtin := category.Parse(name); builtin {
				c, ok = byName[b.Name()]
			}
		}
		if !ok {
			return nil, perr.WithField(perr.Configf("style for unconfigured category %q", name), "styles."+name)
		}
		out[c] = autolink.Style{Decorations: st.Decorations, Highlight: st.Highlight}
	}
	return out, nil
}

func toOutput(res *autolink.Result) domain.LinkifyOutput {
	out := domain.LinkifyOutput{Display: res.Display, Items: make([]domain.Item, 0, res.Set.Len())}
	for _, it := range res.Styled() {
		rs, re := res.Set.RuneSpan(it.Item)
		item := domain.Item{
			Start:     it.Start,
			End:       it.End,
			RuneStart: rs,
			RuneEnd:   re,
			Original:  it.Original,
			Display:   it.Display,
			Category:  it.Category.Name(),
			Rewritten: it.Rewritten(),
		}
		if len(it.Style.Decorations) > 0 || it.Style.Highlight != "" {
			st := domain.Style{Decorations: it.Style.Decorations, Highlight: it.Style.Highlight}
			item.Style = &st
		}
		out.Items = append(out.Items, item)
	}
	for _, ov := range res.Overlaps() {
		out.Overlaps = append(out.Overlaps, domain.Overlap{A: ov.A, B: ov.B})
	}
	return out
}

func checkTable(name, field string) error {
	if !tableName.MatchString(name) {
		return perr.WithField(perr.InvalidArgf("invalid rewrite table name %q", name), field)
	}
	return nil
}
