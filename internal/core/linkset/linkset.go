// Package linkset is the ordered, queryable result of one linkify pass
package linkset

import (
	"sort"
	"unicode/utf8"

	"autolink/internal/core/category"
	"autolink/internal/core/scanner"
)

// Item is a link item over the display text
type Item = scanner.Item

// Overlap is a pair of items whose spans intersect. A and B index into Items()
type Overlap struct {
	A, B int
}

// Set holds the items of one pass sorted by Start. It is immutable after New
type Set struct {
	display string
	items   []Item
	ends    []int // prefix max of End, for early exit in At
}

// New builds a Set over display; items are copied and sorted by Start then discovery order
func New(display string, items []Item) *Set {
	cp := append([]Item(nil), items...)
	sort.SliceStable(cp, func(i, j int) bool {
		if cp[i].Start != cp[j].Start {
			return cp[i].Start < cp[j].Start
		}
		return cp[i].Seq < cp[j].Seq
	})
	ends := make([]int, len(cp))
	hi := 0
	for i, it := range cp {
		if it.End > hi {
			hi = it.End
		}
		ends[i] = hi
	}
	return &Set{display: display, items: cp, ends: ends}
}

// Display returns the text the offsets refer to
func (s *Set) Display() string { return s.display }

// Len returns the number of items
func (s *Set) Len() int { return len(s.items) }

// Items returns a copy of the items in ascending Start order
func (s *Set) Items() []Item { return append([]Item(nil), s.items...) }

// ByCategory returns the items of cat in ascending Start order
func (s *Set) ByCategory(cat category.Category) []Item {
	var out []Item
	for _, it := range s.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// At returns the first item in Start order with Start <= offset < End
func (s *Set) At(offset int) (Item, bool) {
	// items past the first Start > offset cannot cover it
	n := sort.Search(len(s.items), func(i int) bool { return s.items[i].Start > offset })
	// the earliest candidate is the first whose running max End passes offset
	i := sort.Search(n, func(i int) bool { return s.ends[i] > offset })
	for ; i < n; i++ {
		if it := s.items[i]; offset < it.End {
			return it, true
		}
	}
	return Item{}, false
}

// AtRune is At with a character (rune) index into the display text
func (s *Set) AtRune(idx int) (Item, bool) {
	off, ok := s.RuneToByte(idx)
	if !ok {
		return Item{}, false
	}
	return s.At(off)
}

// RuneToByte converts a rune index into a byte offset of the display text.
// The index len(runes) maps to len(display)
func (s *Set) RuneToByte(idx int) (int, bool) {
	if idx < 0 {
		return 0, false
	}
	off := 0
	for n := 0; n < idx; n++ {
		if off >= len(s.display) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(s.display[off:])
		off += size
	}
	return off, true
}

// RuneSpan returns the [start,end) rune indexes of it over the display text
func (s *Set) RuneSpan(it Item) (int, int) {
	start := utf8.RuneCountInString(s.display[:clamp(it.Start, len(s.display))])
	end := start + utf8.RuneCountInString(s.display[clamp(it.Start, len(s.display)):clamp(it.End, len(s.display))])
	return start, end
}

// Overlaps reports every pair of items whose spans intersect, in Start order.
// Overlapping items are kept as is; callers decide how to present them
func (s *Set) Overlaps() []Overlap {
	var out []Overlap
	for i := range s.items {
		for j := i + 1; j < len(s.items) && s.items[j].Start < s.items[i].End; j++ {
			out = append(out, Overlap{A: i, B: j})
		}
	}
	return out
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
