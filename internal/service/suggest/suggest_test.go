package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/gateway/gemini"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	result  []domain.SearchSuggestion
	err     error
}

func (f *fakeAPI) Ground(context.Context, domain.GroundingRequest) (gemini.GroundedAnswer, error) {
	return gemini.GroundedAnswer{}, errors.New("not used")
}

func (f *fakeAPI) Suggest(_ context.Context, prompt string) ([]domain.SearchSuggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.result, f.err
}

func TestSuggestShortQuerySkipsBackend(t *testing.T) {
	api := &fakeAPI{}
	fetcher := NewFetcher(api)
	for _, q := range []string{"", "s", " s ", "م"} {
		got := fetcher.Suggest(context.Background(), q, nil, domain.LanguageEnglish, "KW")
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list for %q, got %#v", q, got)
		}
	}
	if api.calls != 0 {
		t.Fatalf("expected no backend calls, got %d", api.calls)
	}
}

func TestSuggestFiltersAndCaps(t *testing.T) {
	api := &fakeAPI{result: []domain.SearchSuggestion{
		{Text: "Shuwaikh Beach", Type: domain.SuggestionPlace},
		{Text: "", Type: domain.SuggestionPlace},
		{Text: "Shopping", Type: domain.SuggestionCategory},
		{Text: "Mystery", Type: "event"},
		{Text: "Sheraton", Type: domain.SuggestionPlace},
		{Text: "Shawarma", Type: domain.SuggestionCategory},
		{Text: "Sharq Souq", Type: domain.SuggestionPlace},
		{Text: "Shark Reef", Type: domain.SuggestionPlace},
	}}
	got := NewFetcher(api).Suggest(context.Background(), "sh", nil, domain.LanguageEnglish, "KW")
	if len(got) != MaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", MaxSuggestions, len(got))
	}
	if got[0].Text != "Shuwaikh Beach" || got[1].Text != "Shopping" || got[4].Text != "Sharq Souq" {
		t.Fatalf("unexpected suggestions %#v", got)
	}
	if !strings.Contains(api.prompts[0], `"sh"`) || !strings.Contains(api.prompts[0], "in KW") {
		t.Fatalf("unexpected prompt %q", api.prompts[0])
	}
}

func TestSuggestDegradesOnFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	api := &fakeAPI{err: errors.New("boom")}
	got := NewFetcher(api, WithLogger(logger)).Suggest(context.Background(), "dubai", nil, domain.LanguageEnglish, "AE")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	if len(hook.Entries) != 1 || hook.LastEntry().Message != "autocomplete request failed" {
		t.Fatalf("expected one warning entry, got %d", len(hook.Entries))
	}
}

func TestSuggestCachesPerQueryAndLanguage(t *testing.T) {
	api := &fakeAPI{result: []domain.SearchSuggestion{{Text: "Dubai Mall", Type: domain.SuggestionPlace}}}
	fetcher := NewFetcher(api, WithCacheTTL(time.Minute))
	ctx := context.Background()

	fetcher.Suggest(ctx, "dub", nil, domain.LanguageEnglish, "AE")
	fetcher.Suggest(ctx, "DUB", nil, domain.LanguageEnglish, "ae")
	if api.calls != 1 {
		t.Fatalf("expected cached second call, got %d calls", api.calls)
	}
	fetcher.Suggest(ctx, "dub", nil, domain.LanguageArabic, "AE")
	if api.calls != 2 {
		t.Fatalf("expected language to split the cache, got %d calls", api.calls)
	}
}

func TestSuggestFailuresAreNotCached(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	logger, _ := test.NewNullLogger()
	fetcher := NewFetcher(api, WithLogger(logger))
	fetcher.Suggest(context.Background(), "dub", nil, domain.LanguageEnglish, "")
	fetcher.Suggest(context.Background(), "dub", nil, domain.LanguageEnglish, "")
	if api.calls != 2 {
		t.Fatalf("expected failures to retry, got %d calls", api.calls)
	}
}

func TestSuggestWithoutCache(t *testing.T) {
	api := &fakeAPI{result: []domain.SearchSuggestion{}}
	fetcher := NewFetcher(api, WithCacheTTL(0))
	fetcher.Suggest(context.Background(), "dub", nil, domain.LanguageEnglish, "")
	fetcher.Suggest(context.Background(), "dub", nil, domain.LanguageEnglish, "")
	if api.calls != 2 {
		t.Fatalf("expected uncached calls, got %d", api.calls)
	}
}

func TestSuggestCachedResultsAreCopies(t *testing.T) {
	api := &fakeAPI{result: []domain.SearchSuggestion{{Text: "Dubai Mall", Type: domain.SuggestionPlace}}}
	fetcher := NewFetcher(api)

	first := fetcher.Suggest(context.Background(), "dubai", nil, domain.LanguageEnglish, "AE")
	first[0].Text = "changed"
	second := fetcher.Suggest(context.Background(), "dubai", nil, domain.LanguageEnglish, "AE")
	second[0].Text = "changed again"
	third := fetcher.Suggest(context.Background(), "dubai", nil, domain.LanguageEnglish, "AE")

	if api.calls != 1 {
		t.Fatalf("expected one backend call, got %d", api.calls)
	}
	if third[0].Text != "Dubai Mall" {
		t.Fatalf("expected cached suggestion to be untouched, got %q", third[0].Text)
	}
}
