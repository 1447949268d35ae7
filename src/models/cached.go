package models

import (
	"context"
	"time"

	"github.com/Andromeda227799/pandas-ai/src/cache"
)

// CachedResponses wraps an LLM and caches Generate calls keyed by the full
// prompt. The agent includes the dataset fingerprint in its prompts, so
// cached answers never leak across column sets.
type CachedResponses struct {
	LLM   LLM
	Cache *cache.AnswerCache
}

// NewCachedResponses wraps llm with an LRU/TTL answer cache.
func NewCachedResponses(llm LLM, size int, ttl time.Duration) *CachedResponses {
	return &CachedResponses{
		LLM:   llm,
		Cache: cache.New(size, ttl),
	}
}

// Generate checks the cache before calling the underlying model.
func (c *CachedResponses) Generate(ctx context.Context, prompt string) (string, error) {
	key := cache.Key("", prompt)
	if answer, ok := c.Cache.Get(key); ok {
		return answer, nil
	}

	answer, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.Cache.Set(key, answer)
	return answer, nil
}

var _ LLM = (*CachedResponses)(nil)
