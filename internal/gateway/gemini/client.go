// Package gemini is the network boundary to the grounded generation
// backend. It returns raw grounding chunks and parsed suggestions; all
// enrichment happens elsewhere.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/mekedron/daleeli/internal/domain"
)

const (
	defaultRecommendationModel = "gemini-2.5-flash"
	defaultSuggestionModel     = "gemini-3-flash-preview"
	defaultTimeout             = 15 * time.Second
)

// Generator is implemented by *genai.Models.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client calls the generative backend.
type Client struct {
	generator           Generator
	recommendationModel string
	suggestionModel     string
	timeout             time.Duration
	logger              logrus.FieldLogger
}

// Option applies Client options.
type Option func(*Client)

// WithRecommendationModel overrides the model used for grounded searches.
func WithRecommendationModel(model string) Option {
	return func(c *Client) {
		if strings.TrimSpace(model) != "" {
			c.recommendationModel = model
		}
	}
}

// WithSuggestionModel overrides the model used for autocomplete.
func WithSuggestionModel(model string) Option {
	return func(c *Client) {
		if strings.TrimSpace(model) != "" {
			c.suggestionModel = model
		}
	}
}

// WithTimeout bounds every backend call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request traces.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client around an existing generator.
func NewClient(generator Generator, opts ...Option) *Client {
	c := &Client{
		generator:           generator,
		recommendationModel: defaultRecommendationModel,
		suggestionModel:     defaultSuggestionModel,
		timeout:             defaultTimeout,
		logger:              logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial creates a Gemini API client for apiKey.
func Dial(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewClient(sdk.Models, opts...), nil
}

// Ground runs a grounded recommendation call.
func (c *Client) Ground(ctx context.Context, req domain.GroundingRequest) (GroundedAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.generator.GenerateContent(ctx, c.recommendationModel, genai.Text(req.Prompt), groundingConfig(req))
	entry := c.logger.WithFields(logrus.Fields{
		"op":       "ground",
		"model":    c.recommendationModel,
		"anchored": req.Anchor != nil,
		"elapsed":  time.Since(started).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Debug("grounded call failed")
		return GroundedAnswer{}, wrapUpstream("ground", c.recommendationModel, err)
	}

	answer := GroundedAnswer{Text: responseText(resp), Chunks: groundingChunks(resp)}
	entry.WithField("chunks", len(answer.Chunks)).Debug("grounded call completed")
	return answer, nil
}

// Suggest runs a structured autocomplete call.
func (c *Client) Suggest(ctx context.Context, prompt string) ([]domain.SearchSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.generator.GenerateContent(ctx, c.suggestionModel, genai.Text(prompt), suggestionConfig())
	if err != nil {
		return nil, wrapUpstream("suggest", c.suggestionModel, err)
	}
	return parseSuggestions(responseText(resp))
}

func groundingConfig(req domain.GroundingRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	for _, tool := range req.Tools {
		switch tool {
		case domain.GroundingToolMaps:
			config.Tools = append(config.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
		case domain.GroundingToolWebSearch:
			config.Tools = append(config.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		}
	}
	if req.Anchor != nil {
		config.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(req.Anchor.Latitude),
					Longitude: genai.Ptr(req.Anchor.Longitude),
				},
			},
		}
	}
	return config
}

func suggestionConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text": {Type: genai.TypeString},
					"type": {Type: genai.TypeString, Enum: []string{string(domain.SuggestionPlace), string(domain.SuggestionCategory)}},
				},
				Required: []string{"text", "type"},
			},
		},
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return resp.Text()
}

func groundingChunks(resp *genai.GenerateContentResponse) []domain.GroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}
	chunks := make([]domain.GroundingChunk, 0, len(metadata.GroundingChunks))
	for _, raw := range metadata.GroundingChunks {
		if raw == nil {
			continue
		}
		var chunk domain.GroundingChunk
		if raw.Maps != nil {
			chunk.Maps = &domain.GroundingSource{URI: raw.Maps.URI, Title: raw.Maps.Title}
		}
		if raw.Web != nil {
			chunk.Web = &domain.GroundingSource{URI: raw.Web.URI, Title: raw.Web.Title}
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func parseSuggestions(text string) ([]domain.SearchSuggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []domain.SearchSuggestion{}, nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode suggestions: %v", ErrUpstream, err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		return []domain.SearchSuggestion{}, nil
	}
	var suggestions []domain.SearchSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, fmt.Errorf("%w: decode suggestions: %v", ErrUpstream, err)
	}
	return suggestions, nil
}
