package summary

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

// geminiClient calls the Gemini API. The SDK client is created on first use.
type geminiClient struct {
	apiKey string
	model  string
	config *genai.GenerateContentConfig

	mu     sync.Mutex
	client *genai.Client
}

func newGeminiClient(apiKey, model string) *geminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClient{
		apiKey: apiKey,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.3),
			MaxOutputTokens: 500,
		},
	}
}

func (g *geminiClient) models(ctx context.Context) (*genai.Models, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		g.client = client
	}
	return g.client.Models, nil
}

func (g *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	models, err := g.models(ctx)
	if err != nil {
		return "", err
	}

	resp, err := models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", err
	}

	// The response can have multiple candidates, each with multiple parts
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
