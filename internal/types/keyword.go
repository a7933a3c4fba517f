// Package types provides type definitions for structured data used throughout the seo-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// SearchIntent classifies what a searcher is trying to accomplish with a keyword
type SearchIntent string

// Search intent values accepted on a Keyword
const (
	IntentInformational SearchIntent = "informational"
	IntentNavigational  SearchIntent = "navigational"
	IntentTransactional SearchIntent = "transactional"
	IntentCommercial    SearchIntent = "commercial"
)

// Keyword is a search term suggested for an article by the keyword-extraction step.
// Only Term is read by the quality analyzer; the remaining fields are carried through untouched.
type Keyword struct {
	Term         string       `json:"term" validate:"required"`
	Rationale    string       `json:"rationale,omitempty"`
	SearchIntent SearchIntent `json:"searchIntent,omitempty" validate:"omitempty,oneof=informational navigational transactional commercial"`
	SearchVolume string       `json:"searchVolume,omitempty"`
	Difficulty   string       `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`

	// Bilingual support for Bangla keywords
	TermBangla  string `json:"termBangla,omitempty"`
	TermEnglish string `json:"termEnglish,omitempty"`
}

// Validate validates the Keyword using the validator.
func (k *Keyword) Validate() error {
	validate := validator.New()
	return validate.Struct(k)
}

// KeywordResult groups extracted keywords by role
type KeywordResult struct {
	Primary   []Keyword `json:"primary"`
	Secondary []Keyword `json:"secondary"`
	Longtail  []Keyword `json:"longtail"`
}

// All returns every keyword in priority order (primary, secondary, longtail)
func (r *KeywordResult) All() []Keyword {
	all := make([]Keyword, 0, len(r.Primary)+len(r.Secondary)+len(r.Longtail))
	all = append(all, r.Primary...)
	all = append(all, r.Secondary...)
	all = append(all, r.Longtail...)
	return all
}
