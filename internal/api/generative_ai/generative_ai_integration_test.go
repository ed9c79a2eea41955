//go:build integration

package generativeAI

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ai-trip-planner/config"
)

func TestMain(m *testing.M) {
	// Integration tests need a real API key.
	if os.Getenv("GOOGLE_GEMINI_API_KEY") == "" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func integrationConfig() config.Config {
	var cfg config.Config
	cfg.Generator.Model = "gemini-2.0-flash"
	cfg.Generator.Temperature = 0.7
	cfg.Generator.TopK = 40
	cfg.Generator.TopP = 0.95
	cfg.Generator.MaxOutputTokens = 8192
	return cfg
}

func TestAIClient_Complete_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := NewAIClient(ctx, os.Getenv("GOOGLE_GEMINI_API_KEY"), integrationConfig())
	require.NoError(t, err)

	reply, err := client.Complete(ctx, "Reply with the single word: pong")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(reply), "pong")
}

func TestAIClient_Complete_JSONShape_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := NewAIClient(ctx, os.Getenv("GOOGLE_GEMINI_API_KEY"), integrationConfig())
	require.NoError(t, err)

	prompt := `Return ONLY a JSON object of the shape {"summary": string, "days": []}. No prose.`
	reply, err := client.Complete(ctx, prompt)
	require.NoError(t, err)
	assert.Contains(t, reply, "{")
	assert.Contains(t, reply, "}")
}

func TestNewAIClient_MissingKey(t *testing.T) {
	_, err := NewAIClient(context.Background(), "", integrationConfig())
	require.Error(t, err)
}
