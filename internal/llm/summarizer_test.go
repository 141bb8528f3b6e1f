package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ukfit/eventscrape/internal/model"
)

func TestNewSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil summarizer when disabled")
	}
}

func TestNewSummarizer_EnabledWithoutKey(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{Enabled: true}); err == nil {
		t.Fatal("expected error when enabled without API key")
	}
}

func TestShortDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "A 5K fun run through Hyde Park in aid of local charities.  "}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	s, err := NewSummarizer(model.LLMConfig{
		Enabled: true,
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}

	got, err := s.ShortDescription(context.Background(), "Hyde Park 5K", "Join hundreds of runners for the annual Hyde Park 5K...")
	if err != nil {
		t.Fatalf("ShortDescription: %v", err)
	}
	if got != "A 5K fun run through Hyde Park in aid of local charities." {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestShortDescription_EmptyInput(t *testing.T) {
	s, err := NewSummarizer(model.LLMConfig{Enabled: true, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}

	got, err := s.ShortDescription(context.Background(), "Hyde Park 5K", "   ")
	if err != nil {
		t.Fatalf("ShortDescription: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty summary for empty input, got %q", got)
	}
}
