package recommend

import (
	"context"
	"sync"

	"github.com/mekedron/daleeli/internal/domain"
)

// Token identifies one issued search. Later searches have larger tokens.
type Token uint64

// State is a point-in-time view of the search session.
type State struct {
	Token     Token
	Loading   bool
	Results   *domain.Recommendation
	LastError domain.ErrorKind
}

// Tracker holds the results of the most recently issued search. Responses
// for superseded tokens are discarded, so overlapping searches settle on
// the last one issued regardless of completion order.
type Tracker struct {
	mu      sync.Mutex
	latest  Token
	loading bool
	results *domain.Recommendation
	lastErr domain.ErrorKind
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin issues a new token, marks the session loading and clears the
// previous error.
func (t *Tracker) Begin() Token {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.latest++
	t.loading = true
	t.lastErr = domain.ErrorKindNone
	return t.latest
}

// Complete stores rec when token is still current. It reports whether the
// result was applied.
func (t *Tracker) Complete(token Token, rec domain.Recommendation) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token != t.latest {
		return false
	}
	t.results = &rec
	t.loading = false
	return true
}

// Fail records the error kind for a current token. Previous results are
// kept.
func (t *Tracker) Fail(token Token, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token != t.latest {
		return false
	}
	t.lastErr = ClassifyError(err)
	t.loading = false
	return true
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := State{Token: t.latest, Loading: t.loading, LastError: t.lastErr}
	if t.results != nil {
		rec := *t.results
		state.Results = &rec
	}
	return state
}

// Run issues a token, performs the search and applies the outcome. applied
// is false when a newer search was issued in the meantime.
func (t *Tracker) Run(ctx context.Context, searcher Searcher, req Request) (applied bool) {
	return t.Settle(ctx, t.Begin(), searcher, req)
}

// Settle performs the search already issued as token and applies the
// outcome.
func (t *Tracker) Settle(ctx context.Context, token Token, searcher Searcher, req Request) (applied bool) {
	rec, err := searcher.Recommend(ctx, req)
	if err != nil {
		return t.Fail(token, err)
	}
	return t.Complete(token, rec)
}
