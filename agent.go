package pandasai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Andromeda227799/pandas-ai/src/models"
	"github.com/Andromeda227799/pandas-ai/src/schema"
	"github.com/google/uuid"
)

const defaultSystemPrompt = "You are a data analyst. Answer questions about the datasets below concisely and accurately, referring only to columns that exist."

// Message is a single conversation turn held by an Agent.
type Message struct {
	Role    string
	Content string
	At      time.Time
}

// Agent answers natural-language queries about one or more frames. It keeps
// the running conversation so follow-up questions see earlier turns.
type Agent struct {
	frames       []*DataFrame
	llm          models.LLM
	systemPrompt string
	maxRetries   int
	verbose      bool

	conversationID uuid.UUID
	history        []Message
}

// NewAgent creates an agent scoped to the given frames. A nil config applies
// defaults; the zero-config model is models.DummyLLM so the agent works
// without credentials.
func NewAgent(frames []*DataFrame, cfg *Config) (*Agent, error) {
	if len(frames) == 0 {
		return nil, errors.New("agent requires at least one dataframe")
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("dataframe %d is nil", i)
		}
	}

	var llm models.LLM
	maxRetries := 0
	verbose := false
	if cfg != nil {
		llm = cfg.LLM
		maxRetries = cfg.MaxRetries
		verbose = cfg.Verbose
		if cfg.CacheSize > 0 && llm != nil {
			llm = models.NewCachedResponses(llm, cfg.CacheSize, cfg.CacheTTL)
		}
	}
	if llm == nil {
		llm = models.NewDummyLLM("")
	}

	return &Agent{
		frames:       frames,
		llm:          llm,
		systemPrompt: defaultSystemPrompt,
		maxRetries:   maxRetries,
		verbose:      verbose,
	}, nil
}

// ConversationID identifies the current conversation. It is the zero UUID
// until the first chat.
func (a *Agent) ConversationID() uuid.UUID {
	return a.conversationID
}

// History returns the recorded turns of the current conversation.
func (a *Agent) History() []Message {
	return append([]Message(nil), a.history...)
}

// Chat starts a new conversation and answers the query.
func (a *Agent) Chat(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("query is empty")
	}

	a.conversationID = uuid.New()
	a.history = a.history[:0]

	return a.ask(ctx, query)
}

// FollowUp continues the existing conversation with another query.
func (a *Agent) FollowUp(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("query is empty")
	}
	if len(a.history) == 0 {
		return "", &StateError{Msg: "No existing conversation. Please use chat() first."}
	}

	return a.ask(ctx, query)
}

func (a *Agent) ask(ctx context.Context, query string) (string, error) {
	prompt := a.buildPrompt(query)
	if a.verbose {
		log.Printf("[pandasai] conversation %s: %d-byte prompt", a.conversationID, len(prompt))
	}

	answer, err := a.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	now := time.Now()
	a.history = append(a.history,
		Message{Role: "user", Content: query, At: now},
		Message{Role: "assistant", Content: answer, At: now},
	)
	return answer, nil
}

// generate calls the model, retrying transient failures up to maxRetries
// extra attempts.
func (a *Agent) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		answer, err := a.llm.Generate(ctx, prompt)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("llm generate: %w", lastErr)
}

func (a *Agent) buildPrompt(query string) string {
	var sb strings.Builder
	sb.Grow(2048)

	sb.WriteString(a.systemPrompt)
	sb.WriteString("\n")

	for _, f := range a.frames {
		sb.WriteString("\n")
		sb.WriteString(renderFrame(f))
	}

	if len(a.history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for i, msg := range a.history {
			sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, msg.Role, msg.Content))
		}
	}

	sb.WriteString("\nCurrent user question:\n")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n")

	return sb.String()
}

// renderFrame formats a frame's identity, columns, and a short preview into a
// prompt-friendly block.
func renderFrame(d *DataFrame) string {
	var sb strings.Builder

	name := d.Name
	if name == "" {
		name = "unnamed"
	}
	sb.WriteString(fmt.Sprintf("Dataset: %s", name))
	if d.Path != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", d.Path))
	}
	sb.WriteString("\n")
	if d.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", d.Description))
	}

	sb.WriteString(fmt.Sprintf("Fingerprint: %s\n", d.ColumnHash()))
	sb.WriteString("Columns:\n")
	for _, name := range d.Columns() {
		s, _ := d.Column(name)
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", name, schema.InferDtype(s.Values)))
	}
	sb.WriteString(fmt.Sprintf("Rows: %d\n", d.Len()))

	if preview := renderPreview(d, 5); preview != "" {
		sb.WriteString("Preview:\n")
		sb.WriteString(preview)
	}
	return sb.String()
}

func renderPreview(d *DataFrame, n int) string {
	head := d.Head(n)
	if head.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(head.Columns(), " | "))
	sb.WriteString("\n")
	for _, row := range head.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}
