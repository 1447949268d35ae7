package pandasai

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type flakyLLM struct {
	failures int
	calls    int
}

func (f *flakyLLM) Generate(context.Context, string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("transient failure")
	}
	return "recovered", nil
}

func TestNewAgentValidatesFrames(t *testing.T) {
	if _, err := NewAgent(nil, nil); err == nil {
		t.Fatalf("expected error for no frames")
	}
	if _, err := NewAgent([]*DataFrame{nil}, nil); err == nil {
		t.Fatalf("expected error for nil frame")
	}
}

func TestNewAgentDefaultsToDummyModel(t *testing.T) {
	agent, err := NewAgent([]*DataFrame{sampleFrame(t)}, nil)
	if err != nil {
		t.Fatalf("NewAgent returned error: %v", err)
	}

	answer, err := agent.Chat(context.Background(), "What is here?")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if answer == "" {
		t.Fatalf("expected a non-empty dummy answer")
	}
}

func TestAgentChatStartsNewConversation(t *testing.T) {
	agent, err := NewAgent([]*DataFrame{sampleFrame(t)}, &Config{LLM: &countingLLM{answer: "ok"}})
	if err != nil {
		t.Fatalf("NewAgent returned error: %v", err)
	}
	if agent.ConversationID() != uuid.Nil {
		t.Fatalf("fresh agent already has a conversation id")
	}

	if _, err := agent.Chat(context.Background(), "one"); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	first := agent.ConversationID()
	if first == uuid.Nil {
		t.Fatalf("chat did not assign a conversation id")
	}
	if len(agent.History()) != 2 {
		t.Fatalf("history has %d turns, want 2", len(agent.History()))
	}

	if _, err := agent.FollowUp(context.Background(), "two"); err != nil {
		t.Fatalf("FollowUp returned error: %v", err)
	}
	if agent.ConversationID() != first {
		t.Fatalf("follow-up changed the conversation id")
	}
	if len(agent.History()) != 4 {
		t.Fatalf("history has %d turns, want 4", len(agent.History()))
	}

	if _, err := agent.Chat(context.Background(), "three"); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if agent.ConversationID() == first {
		t.Fatalf("new chat kept the old conversation id")
	}
	if len(agent.History()) != 2 {
		t.Fatalf("new chat did not reset history: %d turns", len(agent.History()))
	}
}

func TestAgentFollowUpRequiresHistory(t *testing.T) {
	agent, err := NewAgent([]*DataFrame{sampleFrame(t)}, nil)
	if err != nil {
		t.Fatalf("NewAgent returned error: %v", err)
	}

	var stateErr *StateError
	if _, err := agent.FollowUp(context.Background(), "anything"); !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
}

func TestAgentRejectsEmptyQuery(t *testing.T) {
	agent, err := NewAgent([]*DataFrame{sampleFrame(t)}, nil)
	if err != nil {
		t.Fatalf("NewAgent returned error: %v", err)
	}
	if _, err := agent.Chat(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank query")
	}
}

func TestAgentRetriesTransientFailures(t *testing.T) {
	llm := &flakyLLM{failures: 2}
	agent, err := NewAgent([]*DataFrame{sampleFrame(t)}, &Config{LLM: llm, MaxRetries: 2})
	if err != nil {
		t.Fatalf("NewAgent returned error: %v", err)
	}

	answer, err := agent.Chat(context.Background(), "try hard")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if answer != "recovered" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if llm.calls != 3 {
		t.Fatalf("llm called %d times, want 3", llm.calls)
	}
}

func TestAgentStopsRetryingWithoutBudget(t *testing.T) {
	llm := &flakyLLM{failures: 5}
	agent, err := NewAgent([]*DataFrame{sampleFrame(t)}, &Config{LLM: llm})
	if err != nil {
		t.Fatalf("NewAgent returned error: %v", err)
	}

	if _, err := agent.Chat(context.Background(), "try once"); err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if llm.calls != 1 {
		t.Fatalf("llm called %d times, want 1", llm.calls)
	}
}
