package normalize

// ZoneType identifies a markup zone
type ZoneType string

const (
	// ZoneCodeFence is a fenced code block
	ZoneCodeFence ZoneType = "code_fence"
	// ZoneCodeInline is inline code
	ZoneCodeInline ZoneType = "code_inline"
)

// ZoneSpan is a byte range [Start,End) over the scanned text
type ZoneSpan struct {
	Type       ZoneType
	Start, End int
}

// Zones is a set of zone spans in ascending Start order
type Zones []ZoneSpan

// DetectZones returns code spans in text:
// fenced code between ``` pairs and inline code between single backticks outside fences.
// Backticks themselves are part of the zone so a match touching them is covered too
func DetectZones(text string) Zones {
	if text == "" {
		return nil
	}
	var fences Zones
	for i := 0; i+2 < len(text); {
		if !tripleAt(text, i) {
			i++
			continue
		}
		end := indexTriple(text, i+3)
		if end < 0 {
			break // unterminated fence
		}
		fences = append(fences, ZoneSpan{Type: ZoneCodeFence, Start: i, End: end + 3})
		i = end + 3
	}

	var out Zones
	fi := 0
	for i := 0; i < len(text); i++ {
		if fi < len(fences) && i >= fences[fi].Start {
			out = append(out, fences[fi])
			i = fences[fi].End - 1
			fi++
			continue
		}
		if text[i] != '`' {
			continue
		}
		j := i + 1
		for j < len(text) && text[j] != '`' {
			j++
		}
		if j >= len(text) {
			break // unterminated inline code
		}
		if fi < len(fences) && j >= fences[fi].Start {
			continue // closing tick belongs to a fence
		}
		if j > i+1 {
			out = append(out, ZoneSpan{Type: ZoneCodeInline, Start: i, End: j + 1})
		}
		i = j
	}
	for ; fi < len(fences); fi++ {
		out = append(out, fences[fi])
	}
	return out
}

// Overlaps reports whether [start,end) intersects any zone
func (z Zones) Overlaps(start, end int) bool {
	for _, s := range z {
		if s.Start >= end {
			return false
		}
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}

func tripleAt(s string, i int) bool {
	return i+2 < len(s) && s[i] == '`' && s[i+1] == '`' && s[i+2] == '`'
}

func indexTriple(s string, from int) int {
	for i := from; i+2 < len(s); i++ {
		if tripleAt(s, i) {
			return i
		}
	}
	return -1
}
