package generativeAI

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-ai-trip-planner/config"
)

var _ TextGenerator = (*AIClient)(nil)

// TextGenerator is the generative model contract consumed by the itinerary
// generator.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// AIClient wraps the Gemini API with the sampling parameters and safety
// settings used for itinerary generation.
type AIClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewAIClient(ctx context.Context, apiKey string, cfg config.Config) (*AIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](cfg.Generator.Temperature),
		TopK:            genai.Ptr[float32](cfg.Generator.TopK),
		TopP:            genai.Ptr[float32](cfg.Generator.TopP),
		MaxOutputTokens: cfg.Generator.MaxOutputTokens,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}

	return &AIClient{
		client: client,
		model:  cfg.Generator.Model,
		config: genConfig,
	}, nil
}

// Complete sends a single prompt and returns the model's text reply.
func (ai *AIClient) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), ai.config)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("model returned empty text")
	}
	return text, nil
}

// Model reports the configured model name for usage accounting.
func (ai *AIClient) Model() string {
	return ai.model
}
