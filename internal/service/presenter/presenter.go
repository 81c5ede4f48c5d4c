// Package presenter orders, filters and truncates recommendation results
// for display.
package presenter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mekedron/daleeli/internal/domain"
)

// MaxCards is the number of listings shown at once.
const MaxCards = 4

// Sort controls the secondary ordering.
type Sort string

const (
	SortNone       Sort = ""
	SortDistance   Sort = "distance"
	SortRating     Sort = "rating"
	SortPopularity Sort = "popularity"
)

// ParseSort parses a sort flag value. Empty means no secondary sort.
func ParseSort(value string) (Sort, error) {
	s := Sort(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case SortNone, SortDistance, SortRating, SortPopularity:
		return s, nil
	default:
		return "", fmt.Errorf("invalid sort %q", value)
	}
}

// Options are the user-selected view filters.
type Options struct {
	OpenNow bool
	SortBy  Sort
}

// Present returns at most MaxCards listings: sorted by distance, filtered
// to open places when requested, then reordered by the secondary sort.
// The input slice is not modified.
func Present(listings []domain.BusinessListing, opts Options) []domain.BusinessListing {
	list := make([]domain.BusinessListing, len(listings))
	copy(list, listings)

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DistanceNum < list[j].DistanceNum
	})

	if opts.OpenNow {
		open := list[:0]
		for _, listing := range list {
			if listing.IsOpen {
				open = append(open, listing)
			}
		}
		list = open
	}

	switch opts.SortBy {
	case SortRating:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Rating > list[j].Rating
		})
	case SortPopularity:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ReviewsCount > list[j].ReviewsCount
		})
	}

	if len(list) > MaxCards {
		list = list[:MaxCards]
	}
	return list
}

// Highlight is the one-line notice shown above the results.
type Highlight struct {
	Tag  domain.Tag `json:"tag" yaml:"tag"`
	Text string     `json:"text" yaml:"text"`
}

// HighlightFor picks the first hidden gem, else the first trending
// listing. ok is false when neither exists.
func HighlightFor(rec domain.Recommendation, lang domain.Language) (Highlight, bool) {
	for _, listing := range rec.Businesses {
		if listing.HasTag(domain.TagHiddenGem) {
			text := "Celestial Discovery: " + listing.Name
			if lang == domain.LanguageArabic {
				text = "اكتشاف سماوي: " + listing.Name
			}
			return Highlight{Tag: domain.TagHiddenGem, Text: text}, true
		}
	}
	for _, listing := range rec.Businesses {
		if listing.HasTag(domain.TagTrending) {
			text := listing.Name + " glows bright tonight!"
			if lang == domain.LanguageArabic {
				text = listing.Name + " يتألق الليلة!"
			}
			return Highlight{Tag: domain.TagTrending, Text: text}, true
		}
	}
	return Highlight{}, false
}

const mapsBaseURL = "https://www.google.com/maps"

// MapURL builds the embeddable map link for a result set.
func MapURL(rec domain.Recommendation, searchQuery string, location *domain.Location, countryCode string, lang domain.Language) string {
	if rec.DirectMatch != nil && rec.DirectMatch.MapURL != "" {
		return rec.DirectMatch.MapURL + "&output=embed"
	}

	q := searchQuery
	if q == "" {
		q = "explore"
		if lang == domain.LanguageArabic {
			q = "استكشف"
		}
	}
	if location != nil {
		return fmt.Sprintf("%s?q=%s&ll=%s,%s&z=13&output=embed",
			mapsBaseURL,
			domain.EncodeURIComponent(q),
			strconv.FormatFloat(location.Latitude, 'f', -1, 64),
			strconv.FormatFloat(location.Longitude, 'f', -1, 64),
		)
	}
	region := countryCode
	if region == "" {
		region = "Middle East"
	}
	return fmt.Sprintf("%s?q=%s&output=embed", mapsBaseURL, domain.EncodeURIComponent(q+" in "+region))
}
