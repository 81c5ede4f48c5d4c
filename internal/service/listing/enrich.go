package listing

import (
	"fmt"
	"unicode/utf16"

	"github.com/mekedron/daleeli/internal/domain"
)

// Traits are the per-listing values the grounding metadata does not carry.
type Traits struct {
	Rating        float64
	ReviewsCount  int
	IsOpen        bool
	DistanceKM    float64
	PhoneNumber   string
	ReviewSnippet string
	OpeningHours  []string
}

// Enricher derives listing traits for a business title.
type Enricher interface {
	Traits(name string, countryCode string, lang domain.Language) Traits
}

// MockEnricher fabricates traits from a hash of the title. Nothing it
// returns is sourced from real data; it exists until a backend that
// exposes ratings, hours and phone numbers is integrated.
type MockEnricher struct{}

var _ Enricher = MockEnricher{}

var snippets = map[domain.Language][4]string{
	domain.LanguageEnglish: {
		"Must visit location! The atmosphere is incredible.",
		"The staff was incredibly helpful and the food was divine.",
		"Beautiful interior and great service. Highly recommended.",
		"Best experience I've had in the city so far.",
	},
	domain.LanguageArabic: {
		"مكان رائع يستحق الزيارة! الأجواء مذهلة.",
		"طاقم العمل متعاون للغاية والطعام كان لذيذاً.",
		"تصميم داخلي جميل وخدمة ممتازة. أنصح به بشدة.",
		"أفضل تجربة لي في المدينة حتى الآن.",
	},
}

var openingHours = map[domain.Language][2]string{
	domain.LanguageEnglish: {"Mon-Fri: 09:00 AM - 10:00 PM", "Sat-Sun: 10:00 AM - 11:00 PM"},
	domain.LanguageArabic:  {"الاثنين-الجمعة: 09:00 ص - 10:00 م", "السبت-الأحد: 10:00 ص - 11:00 م"},
}

// Seed sums the UTF-16 code units of name.
func Seed(name string) int {
	sum := 0
	for _, unit := range utf16.Encode([]rune(name)) {
		sum += int(unit)
	}
	return sum
}

// Traits implements Enricher.
func (MockEnricher) Traits(name string, countryCode string, lang domain.Language) Traits {
	seed := Seed(name)
	if lang != domain.LanguageArabic {
		lang = domain.LanguageEnglish
	}
	hours := openingHours[lang]
	return Traits{
		Rating:        Rating(seed),
		ReviewsCount:  50 + seed%5000,
		IsOpen:        seed%3 != 0,
		DistanceKM:    0.1 + float64(seed%20)/10,
		PhoneNumber:   fmt.Sprintf("+%s 5%d", DialCode(countryCode), seed%90000+10000),
		ReviewSnippet: snippets[lang][seed%4],
		OpeningHours:  []string{hours[0], hours[1]},
	}
}

// Rating maps a seed onto [3.5, 5.0] in tenths.
func Rating(seed int) float64 {
	rating := float64(35+seed%15) / 10
	if rating > 5 {
		return 5
	}
	return rating
}

// DialCode returns the phone prefix for a country code.
func DialCode(countryCode string) string {
	switch countryCode {
	case "SA":
		return "966"
	case "AE":
		return "971"
	default:
		return "965"
	}
}
