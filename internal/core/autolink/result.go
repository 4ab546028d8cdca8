package autolink

import "autolink/internal/core/linkset"

// Result is the outcome of one pass
type Result struct {
	Text    string // scanned text (after optional cleaning)
	Display string // text after URL substitutions; item offsets refer to it
	Set     *linkset.Set

	engine *Engine
}

// StyledItem joins an item with its category style
type StyledItem struct {
	Item
	Style Style
}

// Items returns the items in ascending Start order
func (r *Result) Items() []Item { return r.Set.Items() }

// Overlaps returns pairs of intersecting items (indexes into Items)
func (r *Result) Overlaps() []linkset.Overlap { return r.Set.Overlaps() }

// Styled returns the items with their configured styles
func (r *Result) Styled() []StyledItem {
	items := r.Set.Items()
	out := make([]StyledItem, len(items))
	for i, it := range items {
		out[i] = StyledItem{Item: it, Style: r.engine.Style(it.Category)}
	}
	return out
}

// Click dispatches the item covering the byte offset to the click handler.
// It reports whether an item was found
func (r *Result) Click(offset int) bool {
	it, ok := r.Set.At(offset)
	return r.dispatch(it, ok)
}

// ClickRune is Click with a character index into Display
func (r *Result) ClickRune(idx int) bool {
	it, ok := r.Set.AtRune(idx)
	return r.dispatch(it, ok)
}

func (r *Result) dispatch(it Item, ok bool) bool {
	if !ok {
		return false
	}
	if r.engine.click != nil {
		r.engine.click(it)
	}
	return true
}
