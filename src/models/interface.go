package models

import "context"

// LLM turns a fully rendered analysis prompt into a natural-language answer.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
