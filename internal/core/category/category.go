// Package category defines the closed set of link categories the engine recognizes
package category

import (
	"strings"

	"github.com/google/uuid"
)

// Kind is the category discriminator
type Kind uint8

const (
	// KindURL matches http and https links
	KindURL Kind = iota + 1
	// KindPhone matches phone numbers (digit count validated)
	KindPhone
	// KindEmail matches email addresses
	KindEmail
	// KindMention matches @handles
	KindMention
	// KindHashtag matches #tags
	KindHashtag
	// KindCustom matches caller supplied patterns or keywords
	KindCustom
)

// String returns the stable lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindPhone:
		return "phone"
	case KindEmail:
		return "email"
	case KindMention:
		return "mention"
	case KindHashtag:
		return "hashtag"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Category is a tagged union over Kind; custom categories carry their own definition.
// Comparable: two Custom values are equal only if they share the same definition pointer
type Category struct {
	Kind   Kind
	custom *Custom
}

// Custom holds a caller supplied category definition
type Custom struct {
	ID       uuid.UUID
	Name     string
	Patterns []string // regex sources, OR'ed
	Keywords []string // literal words, matched whole-word and case-insensitive
}

// Builtin categories
var (
	URL     = Category{Kind: KindURL}
	Phone   = Category{Kind: KindPhone}
	Email   = Category{Kind: KindEmail}
	Mention = Category{Kind: KindMention}
	Hashtag = Category{Kind: KindHashtag}
)

// Builtins lists the builtin categories in their canonical order
func Builtins() []Category {
	return []Category{URL, Phone, Email, Mention, Hashtag}
}

// NewCustom builds a custom category from regex pattern sources.
// Each call yields a distinct category even for identical patterns
func NewCustom(name string, patterns ...string) Category {
	return NewCustomWithKeywords(name, patterns, nil)
}

// NewCustomWithKeywords builds a custom category from regex sources and literal keywords
func NewCustomWithKeywords(name string, patterns, keywords []string) Category {
	id := uuid.New()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "custom-" + id.String()[:8]
	}
	return Category{
		Kind: KindCustom,
		custom: &Custom{
			ID:       id,
			Name:     name,
			Patterns: append([]string(nil), patterns...),
			Keywords: append([]string(nil), keywords...),
		},
	}
}

// Custom returns the custom definition, nil for builtins
func (c Category) Custom() *Custom { return c.custom }

// IsCustom reports whether c is a custom category
func (c Category) IsCustom() bool { return c.Kind == KindCustom }

// Name returns the display name: the kind name for builtins, the custom name otherwise
func (c Category) Name() string {
	if c.custom != nil {
		return c.custom.Name
	}
	return c.Kind.String()
}

// Valid reports whether c is a known builtin or a custom with a definition
func (c Category) Valid() bool {
	switch c.Kind {
	case KindURL, KindPhone, KindEmail, KindMention, KindHashtag:
		return c.custom == nil
	case KindCustom:
		return c.custom != nil
	default:
		return false
	}
}

// Parse maps a builtin name (case-insensitive) to its category
func Parse(name string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "url", "link":
		return URL, true
	case "phone":
		return Phone, true
	case "email", "mail":
		return Email, true
	case "mention":
		return Mention, true
	case "hashtag", "tag":
		return Hashtag, true
	default:
		return Category{}, false
	}
}
