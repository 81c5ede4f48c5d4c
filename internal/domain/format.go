package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// FormatDistance renders kilometers with one decimal.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// FormatTags renders tags for tables.
func FormatTags(tags []Tag) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, string(tag))
	}
	return strings.Join(parts, ", ")
}

// FlagEmoji converts a two-letter country code into its flag. Anything
// else yields an empty string.
func FlagEmoji(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes value for use in a URL component. Spaces
// become %20 and the marks ! ' ( ) * stay literal.
func EncodeURIComponent(value string) string {
	return componentUnescaper.Replace(url.QueryEscape(value))
}
