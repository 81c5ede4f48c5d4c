// Package listing turns grounding chunks into normalized business
// listings.
package listing

import (
	"fmt"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/query"
)

const (
	fallbackTitle   = "Place"
	imageKeyword    = "landmark"
	imageURLPattern = "https://loremflickr.com/600/400/%s,%s/all?lock=%d"
	searchURLPrefix = "https://www.google.com/search?q="
)

// Request carries the search context needed to normalize chunks.
type Request struct {
	Query         string
	Language      domain.Language
	CountryCode   string
	IsDirectMatch bool
}

// Normalizer converts grounding chunks into listings.
type Normalizer struct {
	enricher Enricher
}

// NewNormalizer creates a normalizer. A nil enricher means MockEnricher.
func NewNormalizer(enricher Enricher) *Normalizer {
	if enricher == nil {
		enricher = MockEnricher{}
	}
	return &Normalizer{enricher: enricher}
}

// Normalize filters, enriches, deduplicates and optionally narrows chunks.
func (n *Normalizer) Normalize(text string, chunks []domain.GroundingChunk, req Request) domain.Recommendation {
	countryName := query.CountryName(req.CountryCode)

	businesses := make([]domain.BusinessListing, 0, len(chunks))
	seen := make(map[string]struct{}, len(chunks))
	index := 0
	for _, chunk := range chunks {
		if chunk.Maps == nil && chunk.Web == nil {
			continue
		}
		listing := n.build(chunk, index, countryName, req)
		index++
		if _, dup := seen[listing.Name]; dup {
			continue
		}
		seen[listing.Name] = struct{}{}
		businesses = append(businesses, listing)
	}

	result := domain.Recommendation{Text: text, Businesses: businesses}
	if req.IsDirectMatch && len(businesses) > 0 {
		match := businesses[0]
		result.DirectMatch = &match
		result.Businesses = []domain.BusinessListing{match}
	}
	return result
}

func (n *Normalizer) build(chunk domain.GroundingChunk, index int, countryName string, req Request) domain.BusinessListing {
	title, uri := extract(chunk)
	traits := n.enricher.Traits(title, req.CountryCode, req.Language)

	website := uri
	if website == "" {
		website = searchURLPrefix + domain.EncodeURIComponent(title)
	}
	return domain.BusinessListing{
		ID:            fmt.Sprintf("biz-%d", index),
		Name:          title,
		Category:      req.Query,
		Rating:        traits.Rating,
		ReviewsCount:  traits.ReviewsCount,
		Address:       title + ", " + countryName,
		MapURL:        uri,
		ImageURL:      fmt.Sprintf(imageURLPattern, domain.EncodeURIComponent(title), imageKeyword, index),
		IsOpen:        traits.IsOpen,
		PhoneNumber:   traits.PhoneNumber,
		Website:       website,
		OpeningHours:  traits.OpeningHours,
		ReviewSnippet: traits.ReviewSnippet,
		Distance:      domain.FormatDistance(traits.DistanceKM),
		DistanceNum:   traits.DistanceKM,
		Tags:          InferTags(traits.Rating, traits.ReviewsCount, index),
	}
}

func extract(chunk domain.GroundingChunk) (string, string) {
	title := ""
	if chunk.Maps != nil {
		title = chunk.Maps.Title
	}
	if title == "" && chunk.Web != nil {
		title = chunk.Web.Title
	}
	if title == "" {
		title = fallbackTitle
	}

	uri := ""
	if chunk.Maps != nil {
		uri = chunk.Maps.URI
	}
	if uri == "" && chunk.Web != nil {
		uri = chunk.Web.URI
	}
	return title, uri
}
