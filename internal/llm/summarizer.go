// Package llm provides the optional short-description summarizer.
// It never affects whether a record is accepted; a summarizer failure
// is logged and the record keeps its extracted description.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ukfit/eventscrape/internal/model"
)

// Summarizer produces a one-sentence short description for events
// whose pages only carried a long description.
type Summarizer struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	maxTokens int
}

// NewSummarizer creates a summarizer from configuration. Returns
// (nil, nil) when the feature is disabled; callers treat a nil
// summarizer as "skip".
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm summarizer enabled but no API key configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	llmModel := cfg.Model
	if llmModel == "" {
		llmModel = openai.GPT4oMini
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}

	return &Summarizer{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     llmModel,
		timeout:   timeout,
		maxTokens: maxTokens,
	}, nil
}

// ShortDescription summarizes an event's full description into one
// sentence suitable for a listing card.
func (s *Summarizer) ShortDescription(ctx context.Context, title, fullDescription string) (string, error) {
	if strings.TrimSpace(fullDescription) == "" {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize UK event listings. Reply with a single plain sentence, no markdown, under 30 words. Only restate facts present in the input; never invent dates, prices or places.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Event: %s\n\n%s", title, fullDescription),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
