package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"google.golang.org/genai"

	"github.com/mekedron/daleeli/internal/domain"
)

type captureGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	deadline bool
	resp     *genai.GenerateContentResponse
	err      error
	calls    int
}

func (g *captureGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.calls++
	g.model = model
	g.contents = contents
	g.config = config
	_, g.deadline = ctx.Deadline()
	return g.resp, g.err
}

func newTestClient(generator Generator) *Client {
	logger, _ := test.NewNullLogger()
	return NewClient(generator, WithLogger(logger), WithTimeout(time.Second))
}

func textResponse(text string, chunks ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	candidate := &genai.Candidate{
		Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
	}
	if len(chunks) > 0 {
		candidate.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: chunks}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate}}
}

func TestGroundSendsToolsAndAnchor(t *testing.T) {
	generator := &captureGenerator{resp: textResponse("two cafes nearby")}
	client := newTestClient(generator)

	_, err := client.Ground(context.Background(), domain.GroundingRequest{
		Prompt: "find cafes",
		Tools:  []domain.GroundingTool{domain.GroundingToolMaps, domain.GroundingToolWebSearch},
		Anchor: &domain.Location{Latitude: 24.7, Longitude: 46.6},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generator.model != defaultRecommendationModel {
		t.Fatalf("expected model %q, got %q", defaultRecommendationModel, generator.model)
	}
	if !generator.deadline {
		t.Fatal("expected call to run under a deadline")
	}
	cfg := generator.config
	if cfg == nil || len(cfg.Tools) != 2 {
		t.Fatalf("expected two tools, got %+v", cfg)
	}
	if cfg.Tools[0].GoogleMaps == nil || cfg.Tools[1].GoogleSearch == nil {
		t.Fatalf("expected maps then search tools, got %+v", cfg.Tools)
	}
	latLng := cfg.ToolConfig.RetrievalConfig.LatLng
	if *latLng.Latitude != 24.7 || *latLng.Longitude != 46.6 {
		t.Fatalf("unexpected retrieval anchor %+v", latLng)
	}
}

func TestGroundWithoutAnchorOmitsToolConfig(t *testing.T) {
	generator := &captureGenerator{resp: textResponse("ok")}
	client := newTestClient(generator)

	_, err := client.Ground(context.Background(), domain.GroundingRequest{
		Prompt: "find cafes",
		Tools:  []domain.GroundingTool{domain.GroundingToolMaps, domain.GroundingToolWebSearch},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generator.config.ToolConfig != nil {
		t.Fatalf("expected no tool config, got %+v", generator.config.ToolConfig)
	}
}

func TestGroundConvertsChunks(t *testing.T) {
	generator := &captureGenerator{resp: textResponse(
		"answer",
		&genai.GroundingChunk{Maps: &genai.GroundingChunkMaps{URI: "https://maps.test/1", Title: "Blue Lagoon Cafe"}},
		nil,
		&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{URI: "https://web.test", Title: "Guide"}},
		&genai.GroundingChunk{},
	)}
	client := newTestClient(generator)

	answer, err := client.Ground(context.Background(), domain.GroundingRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer.Text != "answer" {
		t.Fatalf("expected text answer, got %q", answer.Text)
	}
	if len(answer.Chunks) != 3 {
		t.Fatalf("expected 3 chunks (nil dropped), got %d", len(answer.Chunks))
	}
	if answer.Chunks[0].Maps == nil || answer.Chunks[0].Maps.Title != "Blue Lagoon Cafe" {
		t.Fatalf("unexpected first chunk %+v", answer.Chunks[0])
	}
	if answer.Chunks[1].Web == nil || answer.Chunks[1].Web.URI != "https://web.test" {
		t.Fatalf("unexpected second chunk %+v", answer.Chunks[1])
	}
	if answer.Chunks[2].Maps != nil || answer.Chunks[2].Web != nil {
		t.Fatalf("expected empty third chunk, got %+v", answer.Chunks[2])
	}
}

func TestGroundWrapsUpstreamErrors(t *testing.T) {
	generator := &captureGenerator{err: errors.New("Error 404, Message: Requested entity was not found., Status: NOT_FOUND")}
	client := newTestClient(generator)

	_, err := client.Ground(context.Background(), domain.GroundingRequest{Prompt: "p"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	var upstreamErr *UpstreamRequestError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamRequestError, got %T", err)
	}
	if upstreamErr.StatusCode != 404 {
		t.Fatalf("expected status 404, got %d", upstreamErr.StatusCode)
	}
}

func TestSuggestRequestsStrictSchema(t *testing.T) {
	generator := &captureGenerator{resp: textResponse(`[{"text":"Dubai Mall","type":"place"},{"text":"Shopping","type":"category"}]`)}
	client := newTestClient(generator)

	suggestions, err := client.Suggest(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 2 || suggestions[0].Type != domain.SuggestionPlace {
		t.Fatalf("unexpected suggestions %+v", suggestions)
	}
	if generator.model != defaultSuggestionModel {
		t.Fatalf("expected suggestion model, got %q", generator.model)
	}
	cfg := generator.config
	if cfg.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json mime type, got %q", cfg.ResponseMIMEType)
	}
	if cfg.ResponseSchema.Type != genai.TypeArray || cfg.ResponseSchema.Items.Type != genai.TypeObject {
		t.Fatalf("unexpected schema %+v", cfg.ResponseSchema)
	}
	if got := cfg.ResponseSchema.Items.Properties["type"].Enum; len(got) != 2 || got[0] != "place" || got[1] != "category" {
		t.Fatalf("unexpected enum %v", got)
	}
}

func TestSuggestNonArrayPayloadIsEmpty(t *testing.T) {
	client := newTestClient(&captureGenerator{resp: textResponse(`{"text":"x"}`)})
	suggestions, err := client.Suggest(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %+v", suggestions)
	}
}

func TestSuggestMalformedPayloadFails(t *testing.T) {
	client := newTestClient(&captureGenerator{resp: textResponse(`[{"text":`)})
	if _, err := client.Suggest(context.Background(), "prompt"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestDialRequiresAPIKey(t *testing.T) {
	if _, err := Dial(context.Background(), " "); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestOptionsIgnoreEmptyValues(t *testing.T) {
	client := NewClient(nil, WithRecommendationModel(""), WithSuggestionModel(" "), WithTimeout(0), WithLogger(nil))
	if client.recommendationModel != defaultRecommendationModel || client.suggestionModel != defaultSuggestionModel {
		t.Fatalf("expected default models, got %q/%q", client.recommendationModel, client.suggestionModel)
	}
	if client.timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.timeout)
	}
	if client.logger != logrus.StandardLogger() {
		t.Fatal("expected standard logger fallback")
	}
}
