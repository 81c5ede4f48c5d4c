// Package locale holds the localized interface strings and the country
// detection flow.
package locale

import "github.com/mekedron/daleeli/internal/domain"

// Filters are the labels of the result filter bar.
type Filters struct {
	Distance   string `json:"distance" yaml:"distance"`
	Rating     string `json:"rating" yaml:"rating"`
	OpenNow    string `json:"open_now" yaml:"open_now"`
	Popularity string `json:"popularity" yaml:"popularity"`
	Reset      string `json:"reset" yaml:"reset"`
}

// Content is the set of strings rendered for one language.
type Content struct {
	Title             string                      `json:"title" yaml:"title"`
	SearchPlaceholder string                      `json:"search_placeholder" yaml:"search_placeholder"`
	NearbyTitle       string                      `json:"nearby_title" yaml:"nearby_title"`
	CategoriesTitle   string                      `json:"categories_title" yaml:"categories_title"`
	Loading           string                      `json:"loading" yaml:"loading"`
	NoResults         string                      `json:"no_results" yaml:"no_results"`
	LocationError     string                      `json:"location_error" yaml:"location_error"`
	Footer            string                      `json:"footer" yaml:"footer"`
	Filters           Filters                     `json:"filters" yaml:"filters"`
	Tags              map[domain.Tag]string       `json:"tags" yaml:"tags"`
	Errors            map[domain.ErrorKind]string `json:"errors" yaml:"errors"`
}

var english = Content{
	Title:             "Daleeli",
	SearchPlaceholder: "Search for restaurants, malls, or places...",
	NearbyTitle:       "Recommended Nearby",
	CategoriesTitle:   "Explore Categories",
	Loading:           "Finding live spots using Google Places...",
	NoResults:         "No places found matching your search nearby.",
	LocationError:     "Please enable location to see spots near you.",
	Footer:            "© 2024 Daleeli. Your guide to the Middle East.",
	Filters: Filters{
		Distance:   "Distance",
		Rating:     "Rating",
		OpenNow:    "Open Now",
		Popularity: "Popularity",
		Reset:      "Reset",
	},
	Tags: map[domain.Tag]string{
		domain.TagTrending:     "Trending Today",
		domain.TagHiddenGem:    "Hidden Gem",
		domain.TagPopular:      "Traveler Favorite",
		domain.TagPersonalized: "Recommended for You",
	},
	Errors: map[domain.ErrorKind]string{
		domain.ErrorKindKeyNotFound: "The search service rejected the request. Check that a valid API key is configured.",
		domain.ErrorKindGeneric:     "Something went wrong while searching. Please try again.",
	},
}

var arabic = Content{
	Title:             "دليلي",
	SearchPlaceholder: "ابحث عن مطاعم، مراكز تسوق، أو أماكن...",
	NearbyTitle:       "مقترح بالقرب منك",
	CategoriesTitle:   "استكشف الفئات",
	Loading:           "جاري البحث عن أماكن مباشرة عبر خرائط جوجل...",
	NoResults:         "لم يتم العثور على أماكن تطابق بحثك بالقرب منك.",
	LocationError:     "يرجى تفعيل الموقع لرؤية الأماكن القريبة منك.",
	Footer:            "© 2024 دليلي. دليلك في الشرق الأوسط.",
	Filters: Filters{
		Distance:   "المسافة",
		Rating:     "التقييم",
		OpenNow:    "مفتوح الآن",
		Popularity: "الأكثر شعبية",
		Reset:      "إعادة تعيين",
	},
	Tags: map[domain.Tag]string{
		domain.TagTrending:     "رائج اليوم",
		domain.TagHiddenGem:    "جوهرة مخفية",
		domain.TagPopular:      "مفضل لدى المسافرين",
		domain.TagPersonalized: "مقترح لك",
	},
	Errors: map[domain.ErrorKind]string{
		domain.ErrorKindKeyNotFound: "رفضت خدمة البحث الطلب. تأكد من إعداد مفتاح API صالح.",
		domain.ErrorKindGeneric:     "حدث خطأ أثناء البحث. يرجى المحاولة مرة أخرى.",
	},
}

// For returns the content for lang. Unknown languages get English.
func For(lang domain.Language) Content {
	if lang == domain.LanguageArabic {
		return arabic
	}
	return english
}

// ErrorMessage returns the localized message for kind, or "" for none.
func (c Content) ErrorMessage(kind domain.ErrorKind) string {
	return c.Errors[kind]
}

// TagLabel returns the badge label for tag, falling back to the raw tag.
func (c Content) TagLabel(tag domain.Tag) string {
	if label, ok := c.Tags[tag]; ok {
		return label
	}
	return string(tag)
}
