package domain

import (
	"fmt"
	"strings"
)

// Language selects prompt templates and canned copy.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage validates language values. Empty input means English.
func ParseLanguage(value string) (Language, error) {
	v := Language(strings.ToLower(strings.TrimSpace(value)))
	switch v {
	case "":
		return LanguageEnglish, nil
	case LanguageEnglish, LanguageArabic:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported language %q; expected en or ar", value)
	}
}

// IsRTL reports whether the language is written right to left.
func (l Language) IsRTL() bool {
	return l == LanguageArabic
}
