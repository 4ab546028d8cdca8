// Package normalize prepares raw text for link scanning.
// Clean pipeline
// 1 UTF-8 repair drop invalid bytes
// 2 Remove control chars except \n \r \t and format chars (ZWJ ZWNJ FEFF and the rest of Cf)
// 3 Unicode NFC composition, last so removals cannot leave decomposed sequences
// Unlike detection oriented normalizers it never folds case or width, so matched
// link text stays byte-identical to what the user typed
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.Predicate(unwanted)),
			norm.NFC,
		)
	},
}

// unwanted reports runes Clean drops
func unwanted(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// Clean returns s with the pipeline above applied. Clean is idempotent
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	if !needsClean(s) {
		return s
	}

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// needsClean is the fast path: ASCII printable text and already-NFC text without unwanted runes
func needsClean(s string) bool {
	for _, r := range s {
		if unwanted(r) {
			return true
		}
	}
	return !norm.NFC.IsNormalString(s)
}
