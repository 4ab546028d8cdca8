// Package validate applies per-category acceptance rules to raw pattern matches
package validate

import "autolink/internal/core/category"

// Phone numbers outside this digit range are rejected
const (
	MinPhoneDigits = 7
	MaxPhoneDigits = 15
)

// Accepts reports whether a raw match of cat should become a link item
func Accepts(cat category.Category, s string) bool {
	switch cat.Kind {
	case category.KindPhone:
		n := Digits(s)
		return n >= MinPhoneDigits && n <= MaxPhoneDigits
	default:
		return true
	}
}

// Digits counts ASCII decimal digits in s
func Digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
