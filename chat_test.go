package pandasai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type countingLLM struct {
	calls   int
	answer  string
	prompts []string
}

func (c *countingLLM) Generate(_ context.Context, prompt string) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}

func TestChatCreatesAgentLazily(t *testing.T) {
	df := sampleFrame(t)
	if df.agent != nil {
		t.Fatalf("fresh frame already has an agent")
	}

	llm := &countingLLM{answer: "42"}
	answer, err := df.Chat(context.Background(), "How many rows?", &Config{LLM: llm})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if answer != "42" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if df.agent == nil {
		t.Fatalf("chat did not create an agent")
	}
	if llm.calls != 1 {
		t.Fatalf("llm called %d times, want 1", llm.calls)
	}
}

func TestChatReusesExistingAgent(t *testing.T) {
	df := sampleFrame(t)
	llm := &countingLLM{answer: "ok"}

	if _, err := df.Chat(context.Background(), "First query", &Config{LLM: llm}); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	first := df.agent
	if first == nil {
		t.Fatalf("chat did not create an agent")
	}

	if _, err := df.Chat(context.Background(), "Second query"); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if df.agent != first {
		t.Fatalf("chat rebuilt the agent")
	}
	if llm.calls != 2 {
		t.Fatalf("llm called %d times, want 2", llm.calls)
	}
}

func TestFollowUpWithoutChatFails(t *testing.T) {
	df := sampleFrame(t)

	_, err := df.FollowUp(context.Background(), "Follow-up query")
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if stateErr.Msg != "No existing conversation. Please use chat() first." {
		t.Fatalf("unexpected message: %q", stateErr.Msg)
	}
	if df.agent != nil {
		t.Fatalf("failed follow-up must not create an agent")
	}
}

func TestFollowUpAfterChatDelegates(t *testing.T) {
	df := sampleFrame(t)
	llm := &countingLLM{answer: "answered"}

	if _, err := df.Chat(context.Background(), "First query", &Config{LLM: llm}); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	agent := df.agent

	answer, err := df.FollowUp(context.Background(), "And then?")
	if err != nil {
		t.Fatalf("FollowUp returned error: %v", err)
	}
	if answer != "answered" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if df.agent != agent {
		t.Fatalf("follow-up replaced the agent")
	}
	if llm.calls != 2 {
		t.Fatalf("llm called %d times, want 2", llm.calls)
	}

	// The follow-up prompt carries the earlier conversation.
	last := llm.prompts[len(llm.prompts)-1]
	if !strings.Contains(last, "First query") {
		t.Fatalf("follow-up prompt is missing prior turns:\n%s", last)
	}
}

func TestChatConfigPersistsOnFirstUse(t *testing.T) {
	df := sampleFrame(t)
	llm := &countingLLM{answer: "ok"}
	cfg := &Config{LLM: llm, MaxRetries: 100}

	if _, err := df.Chat(context.Background(), "Test query", cfg); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if df.Config == nil || df.Config.MaxRetries != 100 {
		t.Fatalf("override config did not persist onto the frame: %+v", df.Config)
	}

	// A later override must not rebuild the already-built agent.
	agent := df.agent
	other := &Config{LLM: &countingLLM{answer: "other"}}
	if _, err := df.Chat(context.Background(), "Again", other); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if df.agent != agent {
		t.Fatalf("late config override rebuilt the agent")
	}
	if df.Config != cfg {
		t.Fatalf("late config override replaced the frame config")
	}
}

func TestChatPromptDescribesFrame(t *testing.T) {
	df := sampleFrame(t)
	llm := &countingLLM{answer: "ok"}

	if _, err := df.Chat(context.Background(), "Average salary?", &Config{LLM: llm}); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}

	prompt := llm.prompts[0]
	for _, want := range []string{"employees", "Salary (integer)", "Rows: 5", df.ColumnHash()} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt is missing %q:\n%s", want, prompt)
		}
	}
}
