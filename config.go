package pandasai

import (
	"time"

	"github.com/Andromeda227799/pandas-ai/src/models"
)

// Config carries per-frame chat settings. A nil Config means defaults
// everywhere.
type Config struct {
	// LLM answers natural-language queries. Defaults to models.NewDummyLLM
	// so frames stay usable without credentials.
	LLM models.LLM

	// MaxRetries bounds LLM retry attempts inside the agent. Zero means a
	// single attempt.
	MaxRetries int

	// Verbose enables conversation logging on the agent.
	Verbose bool

	// CacheSize enables an in-memory answer cache when positive.
	CacheSize int

	// CacheTTL bounds cached answer lifetime. Zero falls back to five
	// minutes when the cache is enabled.
	CacheTTL time.Duration
}
