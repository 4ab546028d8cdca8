// Package domain holds DTOs for linkify http and service contracts
package domain

// CustomInput declares a user-defined category
// at least one of patterns or keywords must be non-empty, the engine reports a config error otherwise
type CustomInput struct {
	Name     string   `json:"name" validate:"required,min=1,max=64" example:"android"`
	Patterns []string `json:"patterns,omitempty" validate:"omitempty,max=32,dive,max=512" example:"(?i)\\bandroid\\b"`
	Keywords []string `json:"keywords,omitempty" validate:"omitempty,max=256,dive,max=128" example:"pixel"`
}

// Style is opaque presentation data echoed back per item
type Style struct {
	Decorations []string `json:"decorations,omitempty" validate:"omitempty,max=8,dive,max=32" example:"underline"`
	Highlight   string   `json:"highlight,omitempty" validate:"omitempty,max=32" example:"#3366ff"`
}

// LinkifyInput is one linkify pass
// an empty categories list together with no custom entries means all builtin categories
type LinkifyInput struct {
	Text          string            `json:"text" validate:"max=262144" example:"see https://example.com/a/b or call 555-123-4567"`
	Categories    []string          `json:"categories,omitempty" validate:"omitempty,max=16,dive,link_category" example:"url"`
	Custom        []CustomInput     `json:"custom,omitempty" validate:"omitempty,max=16,dive"`
	Rewrites      map[string]string `json:"rewrites,omitempty" validate:"omitempty,max=1024"`
	RewriteTable  string            `json:"rewrite_table,omitempty" validate:"omitempty,min=1,max=64" example:"marketing"`
	CleanInput    bool              `json:"clean_input,omitempty" example:"true"`
	SkipCodeZones bool              `json:"skip_code_zones,omitempty" example:"false"`
	Strict        bool              `json:"strict,omitempty" example:"false"`
	MaxItems      int               `json:"max_items,omitempty" validate:"omitempty,min=1,max=10000" example:"100"`
	Styles        map[string]Style  `json:"styles,omitempty" validate:"omitempty,max=32,dive"`
}

// Item is a positioned link over the display text
// start and end are byte offsets, rune_start and rune_end are character offsets
type Item struct {
	Start     int    `json:"start" example:"4"`
	End       int    `json:"end" example:"11"`
	RuneStart int    `json:"rune_start" example:"4"`
	RuneEnd   int    `json:"rune_end" example:"11"`
	Original  string `json:"original" example:"https://example.com/a/b"`
	Display   string `json:"display" example:"example"`
	Category  string `json:"category" example:"url"`
	Rewritten bool   `json:"rewritten" example:"true"`
	Style     *Style `json:"style,omitempty"`
}

// Overlap names two intersecting items by index into items
type Overlap struct {
	A int `json:"a" example:"0"`
	B int `json:"b" example:"1"`
}

// LinkifyOutput is the result of one pass
type LinkifyOutput struct {
	Display  string    `json:"display" example:"see example or call 555-123-4567"`
	Items    []Item    `json:"items"`
	Overlaps []Overlap `json:"overlaps,omitempty"`
}

// Rule describes one builtin pattern
type Rule struct {
	ID      string `json:"id" example:"url.http"`
	Pattern string `json:"pattern" example:"https?://\\S+"`
	Guard   string `json:"guard,omitempty" example:"not_after_word"`
}

// CategoryInfo describes a builtin category and its rules
type CategoryInfo struct {
	Name  string `json:"name" example:"url"`
	Rules []Rule `json:"rules"`
}

// CategoriesOutput lists the builtin categories in default scan order
type CategoriesOutput struct {
	PackVersion int            `json:"pack_version" example:"1"`
	Categories  []CategoryInfo `json:"categories"`
}

// RewriteTableInput replaces or extends a named rewrite table
type RewriteTableInput struct {
	Entries map[string]string `json:"entries" validate:"required,min=1,max=1024,dive,keys,min=1,max=2048,endkeys,min=1,max=2048"`
	Replace bool              `json:"replace,omitempty" example:"false"`
}

// RewriteTableOutput is a named rewrite table
type RewriteTableOutput struct {
	Table   string            `json:"table" example:"marketing"`
	Entries map[string]string `json:"entries"`
}

// ClickInput records one click on a rendered link
type ClickInput struct {
	Category string `json:"category" validate:"required,min=1,max=64" example:"url"`
	Original string `json:"original" validate:"required,min=1,max=2048" example:"https://example.com/a/b"`
	Display  string `json:"display" validate:"required,min=1,max=2048" example:"example"`
	Offset   int    `json:"offset" validate:"min=0,max=4294967295" example:"4"`
	Source   string `json:"source,omitempty" validate:"omitempty,max=64" example:"web"`
}

// ClickOutput acknowledges a recorded click
type ClickOutput struct {
	ID string `json:"id" example:"5a0b3c52-4d7e-4a65-9b7e-3f1f0f8a9c11"`
	At string `json:"at" example:"2026-10-17T12:00:00Z"`
}

// TopClicksInput selects the most clicked links
type TopClicksInput struct {
	Category string `json:"category,omitempty" validate:"omitempty,max=64" example:"url"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"20"`
}

// TopClicksRow is one aggregated link
type TopClicksRow struct {
	Original string `json:"original" example:"https://example.com/a/b"`
	Category string `json:"category" example:"url"`
	Clicks   uint64 `json:"clicks" example:"42"`
}
