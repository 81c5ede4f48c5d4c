package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mekedron/daleeli/internal/config"
	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/profile"
	"github.com/mekedron/daleeli/internal/service/recommend"
)

type testRecommender struct {
	mu          sync.Mutex
	requests    []recommend.Request
	recommendFn func(context.Context, recommend.Request) (domain.Recommendation, error)
}

func (m *testRecommender) Recommend(ctx context.Context, req recommend.Request) (domain.Recommendation, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.recommendFn != nil {
		return m.recommendFn(ctx, req)
	}
	return domain.Recommendation{Text: "ok", Businesses: []domain.BusinessListing{
		{ID: "biz-0", Name: req.Query + " place", Rating: 4.6, ReviewsCount: 120, Distance: "0.4 km", DistanceNum: 0.4, IsOpen: true, Tags: []domain.Tag{domain.TagHiddenGem, domain.TagPersonalized}},
	}}, nil
}

func (m *testRecommender) lastRequest(t *testing.T) recommend.Request {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		t.Fatal("expected a recommend request")
	}
	return m.requests[len(m.requests)-1]
}

type testSuggester struct {
	mu       sync.Mutex
	partials []string
}

func (m *testSuggester) Suggest(_ context.Context, partial string, _ *domain.Location, _ domain.Language, _ string) []domain.SearchSuggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partials = append(m.partials, partial)
	return []domain.SearchSuggestion{{Text: partial + " mall", Type: domain.SuggestionPlace}}
}

type testLocation struct {
	location domain.Location
	err      error
}

func (m *testLocation) Get(context.Context, string) (domain.Location, error) {
	return m.location, m.err
}

type testCountries struct {
	code  string
	calls int
}

func (m *testCountries) Detect(context.Context, domain.Location) string {
	m.calls++
	return m.code
}

type testHarness struct {
	deps        Dependencies
	recommender *testRecommender
	suggester   *testSuggester
	countries   *testCountries
	store       *config.Store
	logger      *logrus.Logger
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	logger, _ := test.NewNullLogger()
	h := &testHarness{
		recommender: &testRecommender{},
		suggester:   &testSuggester{},
		countries:   &testCountries{code: "KW"},
		store:       store,
		logger:      logger,
	}
	h.deps = Dependencies{
		Recommender: h.recommender,
		Suggester:   h.suggester,
		Location:    &testLocation{location: domain.Location{Latitude: 25.2, Longitude: 55.27}},
		Countries:   h.countries,
		Sessions:    store,
		Accounts:    profile.NewService(store),
		Logger:      logger,
		Version:     "test",
	}
	return h
}

func (h *testHarness) run(stdin string, args ...string) (int, string, string) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(context.Background(), args, h.deps, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func decodeEnvelope(t *testing.T, raw string) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, raw)
	}
	return env
}

func envelopeData(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", env["data"])
	}
	return data
}
