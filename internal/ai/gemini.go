package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// GeminiGenerator produces newsletter text with Gemini and Google Search
// grounding. Gemini has no mid-turn pause protocol, so a run is one call.
type GeminiGenerator struct {
	apiKey string
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required: %w", ErrAuthentication)
	}
	return &GeminiGenerator{apiKey: apiKey}, nil
}

// Generate issues a single search-grounded generation call.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Info().Str("model", req.Model).Msg("calling model with web search")

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: req.Prompt},
			},
			Role: "user",
		},
	}

	tools := []*genai.Tool{
		{GoogleSearch: &genai.GoogleSearch{}},
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, &genai.GenerateContentConfig{
		Tools: tools,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	searches := 0
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata != nil {
			searches += len(cand.GroundingMetadata.WebSearchQueries)
		}
	}

	text := resp.Text()
	log.Info().Int("chars", len(text)).Int("searches", searches).Msg("generation complete")

	return &Result{Text: text, Searches: searches}, nil
}
