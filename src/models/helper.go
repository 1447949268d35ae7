package models

import (
	"context"
	"fmt"
	"strings"
)

// NewLLMProvider returns a concrete LLM for a provider name. Supported
// providers: openai, anthropic, gemini, ollama, dummy.
func NewLLMProvider(ctx context.Context, provider, model, promptPrefix string) (LLM, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return NewOpenAILLM(model, promptPrefix), nil
	case "anthropic", "claude":
		return NewAnthropicLLM(model, promptPrefix), nil
	case "gemini", "google":
		return NewGeminiLLM(ctx, model, promptPrefix)
	case "ollama":
		return NewOllamaLLM(model, promptPrefix)
	case "dummy", "":
		return NewDummyLLM(promptPrefix), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}
