// Package transform substitutes rewritten URLs into the text and shifts every item
// so its offsets address the display text
package transform

import (
	"sort"
	"strings"

	"autolink/internal/core/category"
	"autolink/internal/core/scanner"
	perr "autolink/internal/platform/errors"
	"autolink/internal/platform/logger"
)

// Options controls transform behavior
type Options struct {
	// Strict returns an invariant error instead of clamping out-of-range offsets
	Strict bool
	// Log receives clamped violations; nil uses the "transform" component logger
	Log *logger.Logger
}

// Sort orders items by Start, breaking ties by discovery order
func Sort(items []scanner.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Start != items[j].Start {
			return items[i].Start < items[j].Start
		}
		return items[i].Seq < items[j].Seq
	})
}

// Apply sorts items, substitutes every rewritten URL into text and shifts offsets in
// one pass. Items are updated in place; the returned slice drops items whose source bytes
// were replaced by a rewritten URL and items clamped to nothing. With no rewritten URL,
// text is returned unchanged
func Apply(text string, items []scanner.Item, opts Options) (string, []scanner.Item, error) {
	log := opts.Log
	if log == nil {
		log = logger.Named("transform")
	}
	Sort(items)

	if !anyRewrite(items) {
		kept, err := check(text, items, opts, log)
		return text, kept, err
	}

	var b strings.Builder
	b.Grow(len(text))
	shift := 0  // bytes removed so far (negative when rewrites lengthen)
	cursor := 0 // end of the last substituted source range

	kept := items[:0]
	for _, it := range items {
		if it.Start < cursor {
			// its source bytes were replaced by an earlier URL's display text
			log.Warn().
				Str("category", it.Category.Name()).
				Str("original", it.Original).
				Int("start", it.Start).
				Msg("transform: item inside a rewritten url dropped")
			continue
		}
		if it.Category.Kind == category.KindURL && it.Rewritten() {
			src := it.Start
			b.WriteString(text[cursor:src])
			b.WriteString(it.Display)
			cursor = src + len(it.Original)

			it.Start = src - shift
			it.End = it.Start + len(it.Display)
			shift += len(it.Original) - len(it.Display)
			kept = append(kept, it)
			continue
		}
		if shift != 0 {
			it.Start -= shift
			it.End = it.Start + len(it.Original)
		}
		kept = append(kept, it)
	}
	b.WriteString(text[cursor:])
	for i := len(kept); i < len(items); i++ {
		items[i] = scanner.Item{}
	}

	display := b.String()
	kept, err := check(display, kept, opts, log)
	return display, kept, err
}
// check verifies 0 <= Start < End <= len(display) for every item. Strict returns the
// first violation; otherwise items are clamped in place and emptied items removed
func check(display string, items []scanner.Item, opts Options, log *logger.Logger) ([]scanner.Item, error) {
	n := len(display)
	for i := range items {
		it := &items[i]
		if it.Start >= 0 && it.Start < it.End && it.End <= n {
			continue
		}
		if opts.Strict {
			return items, perr.WithOp(perr.Invariantf("transform: item %q span [%d,%d) outside display text of %d bytes",
				it.Original, it.Start, it.End, n), "transform.Apply")
		}
		log.Error().
			Str("category", it.Category.Name()).
			Str("original", it.Original).
			Int("start", it.Start).
			Int("end", it.End).
			Int("display_len", n).
			Msg("transform: offset invariant violated, clamping")
		it.Start = clamp(it.Start, 0, n)
		it.End = clamp(it.End, it.Start, n)
	}
	if opts.Strict {
		return items, nil
	}

	kept := items[:0]
	for _, it := range items {
		if it.Start < it.End {
			kept = append(kept, it)
		}
	}
	// zero the tail so dropped items do not pin their strings
	for i := len(kept); i < len(items); i++ {
		items[i] = scanner.Item{}
	}
	return kept, nil
}

func anyRewrite(items []scanner.Item) bool {
	for _, it := range items {
		if it.Category.Kind == category.KindURL && it.Rewritten() {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
