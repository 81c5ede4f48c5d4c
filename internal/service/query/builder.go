// Package query builds prompts and request configuration for the
// grounded generation backend.
package query

import (
	"fmt"
	"strings"

	"github.com/mekedron/daleeli/internal/domain"
)

// RadiusKM bounds every recommendation prompt.
const RadiusKM = 2

// SuggestionCount is the number of autocomplete entries requested.
const SuggestionCount = 5

const unresolvedCoordinate = "unknown"

// Build constructs the recommendation prompt and grounding tools. It never
// fails: a nil location degrades to placeholder coordinates and no
// retrieval anchor.
func Build(query string, location *domain.Location, lang domain.Language, countryCode string, isDirectMatch bool) domain.GroundingRequest {
	countryName := CountryName(countryCode)
	lat, lon := unresolvedCoordinate, unresolvedCoordinate
	if location != nil {
		lat = formatCoordinate(location.Latitude)
		lon = formatCoordinate(location.Longitude)
	}

	var prompt string
	if lang == domain.LanguageArabic {
		prompt = arabicPrompt(query, lat, lon, countryName, isDirectMatch)
	} else {
		prompt = englishPrompt(query, lat, lon, countryName, isDirectMatch)
	}

	req := domain.GroundingRequest{
		Prompt: prompt,
		Tools:  []domain.GroundingTool{domain.GroundingToolMaps, domain.GroundingToolWebSearch},
	}
	if location != nil {
		anchor := *location
		req.Anchor = &anchor
	}
	return req
}

func englishPrompt(query, lat, lon, countryName string, isDirectMatch bool) string {
	target := fmt.Sprintf("find the 4 closest authentic businesses for %q", query)
	if isDirectMatch {
		target = fmt.Sprintf("find the specific place %q", query)
	}
	lines := []string{
		fmt.Sprintf("Using Google Maps grounding, %s strictly within %dkm of (%s, %s) in %s.", target, RadiusKM, lat, lon, countryName),
		"For each business, extract:",
		"1. Official name and verified address.",
		"2. Google rating and review count.",
		"3. Phone number and official website.",
		"4. Opening hours for today.",
		`5. Identify if it's a "Hidden Gem" or "Trending".`,
		"Format the response clearly. Focus only on the most immediate results.",
	}
	return strings.Join(lines, "\n")
}

func arabicPrompt(query, lat, lon, countryName string, isDirectMatch bool) string {
	target := fmt.Sprintf("ابحث عن أفضل 4 أماكن تجارية حقيقية لـ \"%s\"", query)
	if isDirectMatch {
		target = fmt.Sprintf("ابحث عن المكان المحدد \"%s\"", query)
	}
	lines := []string{
		fmt.Sprintf("باستخدام خرائط جوجل، %s حصرياً ضمن نطاق %d كم من (%s، %s) في %s.", target, RadiusKM, lat, lon, countryName),
		"لكل نشاط، استخرج:",
		"1. الاسم الرسمي والعنوان.",
		"2. التقييم وعدد المراجعات.",
		"3. رقم الهاتف والموقع الإلكتروني الرسمي.",
		"4. ساعات العمل لليوم.",
		`5. حدد ما إذا كان "جوهرة مخفية" أو "رائج".`,
		"نسق الإجابة بوضوح. ركز فقط على النتائج الأقرب.",
	}
	return strings.Join(lines, "\n")
}

// BuildSuggestion constructs the autocomplete prompt. The region is the raw
// country code, falling back to DefaultRegion.
func BuildSuggestion(partial string, lang domain.Language, countryCode string) string {
	region := strings.TrimSpace(countryCode)
	if region == "" {
		region = DefaultRegion
	}
	languageName := "English"
	if lang == domain.LanguageArabic {
		languageName = "Arabic"
	}
	lines := []string{
		fmt.Sprintf("Based on the partial search query %q for a local guide app in %s, provide %d context-relevant search autocomplete suggestions.", partial, region, SuggestionCount),
		`Identify if each suggestion is a specific "place" (e.g., 'Dubai Mall') or a general "category" (e.g., 'Shopping').`,
		fmt.Sprintf("Current Language: %s.", languageName),
		"Return as a JSON array of objects with keys 'text' and 'type'.",
	}
	return strings.Join(lines, "\n")
}

func formatCoordinate(value float64) string {
	return fmt.Sprintf("%g", value)
}
