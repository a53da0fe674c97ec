// Package groq implements the story generator against Groq's OpenAI-style
// chat completion endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Sharmil001/codula-app/internal/config"
	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	"github.com/Sharmil001/codula-app/internal/infrastructure/ai"
	"github.com/Sharmil001/codula-app/internal/infrastructure/httpclient"
)

const completionURL = "https://api.groq.com/openai/v1/chat/completions"

var _ ports.StoryGenerator = (*StoryGenerator)(nil)

type StoryGenerator struct {
	cfg        config.BackendConfig
	httpClient httpclient.HTTPClient
}

func NewStoryGenerator(cfg config.BackendConfig, httpClient httpclient.HTTPClient) *StoryGenerator {
	if httpClient == nil {
		httpClient = httpclient.New(cfg.Timeout)
	}
	return &StoryGenerator{cfg: cfg, httpClient: httpClient}
}

func (g *StoryGenerator) Name() string {
	return "groq"
}

func (g *StoryGenerator) Configured() bool {
	return g.cfg.APIKey != ""
}

type (
	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
)

func (g *StoryGenerator) GenerateStory(ctx context.Context, data models.PRData) (models.PRStory, error) {
	payload, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: ai.BuildPRPrompt(data)},
		},
	})
	if err != nil {
		return models.PRStory{}, fmt.Errorf("error encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionURL, bytes.NewReader(payload))
	if err != nil {
		return models.PRStory{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.PRStory{}, fmt.Errorf("error calling completion endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.PRStory{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return models.PRStory{}, fmt.Errorf("completion endpoint returned %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return models.PRStory{}, fmt.Errorf("error decoding completion response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return models.PRStory{}, fmt.Errorf("completion response has no choices")
	}

	return ai.ParseStory(chat.Choices[0].Message.Content)
}
