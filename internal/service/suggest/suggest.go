// Package suggest serves search-as-you-type autocomplete entries.
package suggest

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/gateway/gemini"
	"github.com/mekedron/daleeli/internal/service/query"
)

const (
	// MinQueryLength is the shortest query sent to the backend.
	MinQueryLength = 2
	// MaxSuggestions caps the returned list.
	MaxSuggestions = 5

	defaultCacheTTL = 5 * time.Minute
)

// Fetcher asks the backend for suggestions and caches the answers.
type Fetcher struct {
	api    gemini.API
	cache  *cache.Cache
	logger logrus.FieldLogger
}

// Option applies Fetcher options.
type Option func(*Fetcher)

// WithCacheTTL sets how long answers are reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(f *Fetcher) {
		if ttl <= 0 {
			f.cache = nil
			return
		}
		f.cache = cache.New(ttl, 2*ttl)
	}
}

// WithLogger sets the logger for degraded calls.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a suggestion fetcher.
func NewFetcher(api gemini.API, opts ...Option) *Fetcher {
	f := &Fetcher{
		api:    api,
		cache:  cache.New(defaultCacheTTL, 2*defaultCacheTTL),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Suggest returns up to MaxSuggestions entries for a partial query. It
// never fails: short queries and backend errors both yield an empty list.
// location is accepted for parity with searches; the prompt is scoped by
// country only.
func (f *Fetcher) Suggest(ctx context.Context, partial string, location *domain.Location, lang domain.Language, countryCode string) []domain.SearchSuggestion {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < MinQueryLength {
		return []domain.SearchSuggestion{}
	}

	key := cacheKey(partial, lang, countryCode)
	if f.cache != nil {
		if cached, ok := f.cache.Get(key); ok {
			return append([]domain.SearchSuggestion(nil), cached.([]domain.SearchSuggestion)...)
		}
	}

	prompt := query.BuildSuggestion(partial, lang, countryCode)
	raw, err := f.api.Suggest(ctx, prompt)
	if err != nil {
		f.logger.WithFields(logrus.Fields{
			"query": partial,
			"lang":  lang,
		}).WithError(err).Warn("autocomplete request failed")
		return []domain.SearchSuggestion{}
	}

	out := sanitize(raw)
	if f.cache != nil {
		f.cache.SetDefault(key, append([]domain.SearchSuggestion(nil), out...))
	}
	return out
}

func sanitize(raw []domain.SearchSuggestion) []domain.SearchSuggestion {
	out := make([]domain.SearchSuggestion, 0, MaxSuggestions)
	for _, s := range raw {
		if len(out) == MaxSuggestions {
			break
		}
		text := strings.TrimSpace(s.Text)
		if text == "" || !s.Type.Valid() {
			continue
		}
		out = append(out, domain.SearchSuggestion{Text: text, Type: s.Type})
	}
	return out
}

func cacheKey(partial string, lang domain.Language, countryCode string) string {
	return string(lang) + "|" + strings.ToUpper(countryCode) + "|" + strings.ToLower(partial)
}
