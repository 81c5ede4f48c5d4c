package presenter

import (
	"strings"
	"testing"

	"github.com/mekedron/daleeli/internal/domain"
)

func listing(id string, distance, rating float64, reviews int, open bool) domain.BusinessListing {
	return domain.BusinessListing{ID: id, Name: "Place " + id, DistanceNum: distance, Rating: rating, ReviewsCount: reviews, IsOpen: open}
}

func ids(listings []domain.BusinessListing) string {
	parts := make([]string, 0, len(listings))
	for _, l := range listings {
		parts = append(parts, l.ID)
	}
	return strings.Join(parts, ",")
}

func fixture() []domain.BusinessListing {
	return []domain.BusinessListing{
		listing("a", 1.5, 4.0, 100, true),
		listing("b", 0.3, 4.9, 50, false),
		listing("c", 0.9, 3.6, 4000, true),
		listing("d", 2.0, 4.7, 900, true),
		listing("e", 0.5, 4.2, 2500, true),
	}
}

func TestPresentSortsByDistanceAndTruncates(t *testing.T) {
	got := Present(fixture(), Options{})
	if ids(got) != "b,e,c,a" {
		t.Fatalf("expected b,e,c,a, got %s", ids(got))
	}
}

func TestPresentOpenNowRunsBeforeTruncation(t *testing.T) {
	got := Present(fixture(), Options{OpenNow: true})
	if ids(got) != "e,c,a,d" {
		t.Fatalf("expected e,c,a,d, got %s", ids(got))
	}
}

func TestPresentSecondarySorts(t *testing.T) {
	byRating := Present(fixture(), Options{SortBy: SortRating})
	if ids(byRating) != "b,d,e,a" {
		t.Fatalf("expected rating order b,d,e,a, got %s", ids(byRating))
	}

	byPopularity := Present(fixture(), Options{OpenNow: true, SortBy: SortPopularity})
	if ids(byPopularity) != "c,e,d,a" {
		t.Fatalf("expected popularity order c,e,d,a, got %s", ids(byPopularity))
	}
}

func TestPresentKeepsDistanceOrderForTies(t *testing.T) {
	input := []domain.BusinessListing{
		listing("far", 1.9, 4.5, 10, true),
		listing("near", 0.2, 4.5, 10, true),
	}
	got := Present(input, Options{SortBy: SortRating})
	if ids(got) != "near,far" {
		t.Fatalf("expected stable tie order near,far, got %s", ids(got))
	}
	if input[0].ID != "far" {
		t.Fatal("expected input slice to stay untouched")
	}
}

func TestPresentEmpty(t *testing.T) {
	if got := Present(nil, Options{OpenNow: true}); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestParseSort(t *testing.T) {
	if s, err := ParseSort(" Rating "); err != nil || s != SortRating {
		t.Fatalf("expected rating, got %q err=%v", s, err)
	}
	if s, err := ParseSort(""); err != nil || s != SortNone {
		t.Fatalf("expected no sort, got %q err=%v", s, err)
	}
	if _, err := ParseSort("price"); err == nil {
		t.Fatal("expected invalid sort error")
	}
}

func TestHighlightPrefersHiddenGem(t *testing.T) {
	rec := domain.Recommendation{Businesses: []domain.BusinessListing{
		{Name: "Souq", Tags: []domain.Tag{domain.TagTrending}},
		{Name: "Quiet Garden", Tags: []domain.Tag{domain.TagHiddenGem}},
	}}
	h, ok := HighlightFor(rec, domain.LanguageEnglish)
	if !ok || h.Tag != domain.TagHiddenGem || h.Text != "Celestial Discovery: Quiet Garden" {
		t.Fatalf("unexpected highlight %+v ok=%v", h, ok)
	}

	rec.Businesses = rec.Businesses[:1]
	h, ok = HighlightFor(rec, domain.LanguageArabic)
	if !ok || h.Text != "Souq يتألق الليلة!" {
		t.Fatalf("unexpected trending highlight %+v ok=%v", h, ok)
	}

	rec.Businesses = nil
	if _, ok := HighlightFor(rec, domain.LanguageEnglish); ok {
		t.Fatal("expected no highlight")
	}
}

func TestMapURL(t *testing.T) {
	direct := domain.BusinessListing{MapURL: "https://maps.google.com/?cid=1"}
	if got := MapURL(domain.Recommendation{DirectMatch: &direct}, "x", nil, "", domain.LanguageEnglish); got != "https://maps.google.com/?cid=1&output=embed" {
		t.Fatalf("unexpected direct match url %q", got)
	}

	loc := &domain.Location{Latitude: 29.3759, Longitude: 47.9774}
	got := MapURL(domain.Recommendation{}, "coffee shops", loc, "KW", domain.LanguageEnglish)
	if got != "https://www.google.com/maps?q=coffee%20shops&ll=29.3759,47.9774&z=13&output=embed" {
		t.Fatalf("unexpected located url %q", got)
	}

	got = MapURL(domain.Recommendation{}, "", nil, "", domain.LanguageEnglish)
	if got != "https://www.google.com/maps?q=explore%20in%20Middle%20East&output=embed" {
		t.Fatalf("unexpected fallback url %q", got)
	}
}

func TestMapURLKeepsURIComponentMarks(t *testing.T) {
	got := MapURL(domain.Recommendation{}, "Joe's (Old) Cafe*", nil, "AE", domain.LanguageEnglish)
	if got != "https://www.google.com/maps?q=Joe's%20(Old)%20Cafe*%20in%20AE&output=embed" {
		t.Fatalf("unexpected map url %q", got)
	}
}
