package gemini

import (
	"context"

	"github.com/mekedron/daleeli/internal/domain"
)

// GroundedAnswer is the raw output of a recommendation call.
type GroundedAnswer struct {
	Text   string
	Chunks []domain.GroundingChunk
}

// API describes the grounded generation operations used by the app.
type API interface {
	Ground(ctx context.Context, req domain.GroundingRequest) (GroundedAnswer, error)
	Suggest(ctx context.Context, prompt string) ([]domain.SearchSuggestion, error)
}
