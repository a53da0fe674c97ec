package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Sharmil001/codula-app/internal/config"
	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	"github.com/Sharmil001/codula-app/internal/infrastructure/ai"
)

var _ ports.StoryGenerator = (*StoryGenerator)(nil)

// StoryGenerator produces PR stories through the Gemini API. The client is
// built lazily so an unconfigured backend costs nothing.
type StoryGenerator struct {
	cfg    config.BackendConfig
	client *genai.Client
}

func NewStoryGenerator(cfg config.BackendConfig) *StoryGenerator {
	return &StoryGenerator{cfg: cfg}
}

func (g *StoryGenerator) Name() string {
	return "gemini"
}

func (g *StoryGenerator) Configured() bool {
	return g.cfg.APIKey != ""
}

func (g *StoryGenerator) GenerateStory(ctx context.Context, data models.PRData) (models.PRStory, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return models.PRStory{}, fmt.Errorf("error creating gemini client: %w", err)
	}

	prompt := ai.BuildPRPrompt(data)

	genConfig := &genai.GenerateContentConfig{
		Temperature:      float32Ptr(0.3),
		MaxOutputTokens:  int32(4000),
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return models.PRStory{}, fmt.Errorf("error generating PR story: %w", err)
	}

	return ai.ParseStory(formatResponse(resp))
}

func (g *StoryGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var out string
	for _, part := range candidate.Content.Parts {
		out += part.Text
	}
	return out
}

func float32Ptr(f float32) *float32 {
	return &f
}
