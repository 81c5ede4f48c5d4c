package domain

// SuggestionType tells whether a suggestion names a place or a category.
type SuggestionType string

const (
	SuggestionPlace    SuggestionType = "place"
	SuggestionCategory SuggestionType = "category"
)

// Valid reports whether t is a known suggestion type.
func (t SuggestionType) Valid() bool {
	return t == SuggestionPlace || t == SuggestionCategory
}

// SearchSuggestion is one autocomplete entry.
type SearchSuggestion struct {
	Text string         `json:"text" yaml:"text"`
	Type SuggestionType `json:"type" yaml:"type"`
}
