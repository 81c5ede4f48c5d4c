// Package recommend runs grounded searches and tracks their outcome.
package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/gateway/gemini"
	"github.com/mekedron/daleeli/internal/service/listing"
	"github.com/mekedron/daleeli/internal/service/query"
)

// NearbyLimit caps the listings of the initial nearby search.
const NearbyLimit = 4

// ErrEmptyQuery is returned for blank search queries.
var ErrEmptyQuery = errors.New("search query is empty")

// Request describes one search.
type Request struct {
	Query         string
	Location      *domain.Location
	Language      domain.Language
	CountryCode   string
	IsDirectMatch bool
	// Limit truncates the result list when positive.
	Limit int
}

// Searcher runs a recommendation request.
type Searcher interface {
	Recommend(ctx context.Context, req Request) (domain.Recommendation, error)
}

// Service builds prompts, calls the backend and normalizes the answer.
type Service struct {
	api        gemini.API
	normalizer *listing.Normalizer
	logger     logrus.FieldLogger
}

var _ Searcher = (*Service)(nil)

// Option applies Service options.
type Option func(*Service)

// WithEnricher replaces the synthetic listing traits.
func WithEnricher(enricher listing.Enricher) Option {
	return func(s *Service) {
		s.normalizer = listing.NewNormalizer(enricher)
	}
}

// WithLogger sets the service logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a recommendation service.
func NewService(api gemini.API, opts ...Option) *Service {
	s := &Service{
		api:        api,
		normalizer: listing.NewNormalizer(nil),
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend performs one grounded search. Errors are returned unchanged
// from the gateway; use ClassifyError to map them to a user-facing kind.
func (s *Service) Recommend(ctx context.Context, req Request) (domain.Recommendation, error) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return domain.Recommendation{}, ErrEmptyQuery
	}

	grounding := query.Build(q, req.Location, req.Language, req.CountryCode, req.IsDirectMatch)
	answer, err := s.api.Ground(ctx, grounding)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"query": q,
			"lang":  req.Language,
			"kind":  ClassifyError(err),
		}).WithError(err).Warn("search failed")
		return domain.Recommendation{}, err
	}

	rec := s.normalizer.Normalize(answer.Text, answer.Chunks, listing.Request{
		Query:         q,
		Language:      req.Language,
		CountryCode:   req.CountryCode,
		IsDirectMatch: req.IsDirectMatch,
	})
	if req.Limit > 0 && len(rec.Businesses) > req.Limit {
		rec.Businesses = rec.Businesses[:req.Limit]
	}
	s.logger.WithFields(logrus.Fields{
		"query":  q,
		"lang":   req.Language,
		"chunks": len(answer.Chunks),
		"count":  len(rec.Businesses),
	}).Debug("search completed")
	return rec, nil
}

// NearbyQuery is the localized query of the initial search.
func NearbyQuery(lang domain.Language) string {
	if lang == domain.LanguageArabic {
		return "أبرز المعالم السياحية"
	}
	return "top tourist spots"
}

// NearbyRequest builds the initial search issued once a location is known.
func NearbyRequest(location *domain.Location, lang domain.Language, countryCode string) Request {
	return Request{
		Query:       NearbyQuery(lang),
		Location:    location,
		Language:    lang,
		CountryCode: countryCode,
		Limit:       NearbyLimit,
	}
}

// Nearby runs the initial top tourist spots search.
func (s *Service) Nearby(ctx context.Context, location *domain.Location, lang domain.Language, countryCode string) (domain.Recommendation, error) {
	return s.Recommend(ctx, NearbyRequest(location, lang, countryCode))
}
