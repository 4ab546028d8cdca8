package linkset

import (
	"testing"

	"autolink/internal/core/category"
)

func sample() *Set {
	// "ab #x 見 http://a.com"
	display := "ab #x 見 http://a.com"
	return New(display, []Item{
		{Start: 10, End: 22, Original: "http://a.com", Display: "http://a.com", Category: category.URL, Seq: 1},
		{Start: 3, End: 5, Original: "#x", Display: "#x", Category: category.Hashtag, Seq: 0},
	})
}

func TestNew_SortsAndCopies(t *testing.T) {
	s := sample()
	items := s.Items()
	if len(items) != 2 || s.Len() != 2 || items[0].Original != "#x" {
		t.Fatalf("items = %+v", items)
	}
	items[0].Original = "mutated"
	if s.Items()[0].Original != "#x" {
		t.Fatalf("Items must return a copy")
	}
	if s.Display() != "ab #x 見 http://a.com" {
		t.Fatalf("display = %q", s.Display())
	}
}

func TestAt(t *testing.T) {
	s := sample()
	cases := []struct {
		off  int
		want string
		ok   bool
	}{
		{-1, "", false},
		{0, "", false},
		{3, "#x", true},
		{4, "#x", true},
		{5, "", false},
		{9, "", false},
		{10, "http://a.com", true},
		{21, "http://a.com", true},
		{22, "", false},
		{100, "", false},
	}
	for _, c := range cases {
		it, ok := s.At(c.off)
		if ok != c.ok || it.Original != c.want {
			t.Fatalf("At(%d) = %q,%v want %q,%v", c.off, it.Original, ok, c.want, c.ok)
		}
	}
}

func TestAt_NestedPicksFirstByStart(t *testing.T) {
	s := New("http://a.com/#tag", []Item{
		{Start: 13, End: 17, Original: "#tag", Category: category.Hashtag, Seq: 1},
		{Start: 0, End: 17, Original: "http://a.com/#tag", Category: category.URL, Seq: 0},
		{Start: 2, End: 4, Original: "tp", Category: category.NewCustom("c", "tp"), Seq: 2},
	})
	it, ok := s.At(14)
	if !ok || it.Category != category.URL {
		t.Fatalf("At(14) = %+v", it)
	}
	it, ok = s.At(3)
	if !ok || it.Category != category.URL {
		t.Fatalf("At(3) = %+v", it)
	}
	if got := s.Overlaps(); len(got) != 2 {
		t.Fatalf("overlaps = %+v", got)
	}
}

func TestAtRuneAndRuneSpan(t *testing.T) {
	s := sample()
	// rune 6 is 見, rune 8 is the 'h' of http
	if _, ok := s.AtRune(6); ok {
		t.Fatalf("rune 6 is not linked")
	}
	it, ok := s.AtRune(8)
	if !ok || it.Category != category.URL {
		t.Fatalf("AtRune(8) = %+v,%v", it, ok)
	}
	start, end := s.RuneSpan(it)
	if start != 8 || end != 20 {
		t.Fatalf("RuneSpan = %d,%d want 8,20", start, end)
	}
	if _, ok := s.AtRune(-1); ok {
		t.Fatalf("negative rune index")
	}
	if _, ok := s.AtRune(99); ok {
		t.Fatalf("rune index past end")
	}
	if off, ok := s.RuneToByte(20); !ok || off != len(s.Display()) {
		t.Fatalf("RuneToByte(end) = %d,%v", off, ok)
	}
}

func TestByCategoryAndNoOverlaps(t *testing.T) {
	s := sample()
	if got := s.ByCategory(category.URL); len(got) != 1 || got[0].Original != "http://a.com" {
		t.Fatalf("ByCategory(url) = %+v", got)
	}
	if got := s.ByCategory(category.Phone); got != nil {
		t.Fatalf("ByCategory(phone) = %+v", got)
	}
	if got := s.Overlaps(); got != nil {
		t.Fatalf("unexpected overlaps %+v", got)
	}
}

func TestEmptySet(t *testing.T) {
	s := New("", nil)
	if s.Len() != 0 || len(s.Items()) != 0 {
		t.Fatalf("expected empty")
	}
	if _, ok := s.At(0); ok {
		t.Fatalf("empty set has no items")
	}
}
