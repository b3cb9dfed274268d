package chat

import (
	"strings"
	"testing"

	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/utils/ptr"
)

func TestRenderTranscript(t *testing.T) {
	history := []*Turn{
		{Message: "hi", Response: ptr.ToString("hello there")},
		{Message: "how was your day?"},
	}

	got := RenderTranscript(history)
	want := "Human: hi\nAI Friend: hello there\nHuman: how was your day?\n"
	if got != want {
		t.Errorf("RenderTranscript() = %q, want %q", got, want)
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	if got := RenderTranscript(nil); got != "" {
		t.Errorf("RenderTranscript(nil) = %q, want empty", got)
	}
	if got := RenderTranscript([]*Turn{}); got != "" {
		t.Errorf("RenderTranscript(empty) = %q, want empty", got)
	}
}

func TestAssembleEmptyHistory(t *testing.T) {
	registry, err := NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}

	prompt, err := Assemble(registry.Resolve(user.PersonaNeutral), nil, "Hello")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	// The transcript block is empty but the input line must be present.
	if want := "Current conversation:\n\nHuman: Hello\nAI Friend: "; !strings.Contains(prompt, want) {
		t.Errorf("Assemble() = %q, want suffix %q", prompt, want)
	}
}

func TestAssembleOrdersTurnsChronologically(t *testing.T) {
	registry, err := NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}

	history := []*Turn{
		{Message: "first", Response: ptr.ToString("one")},
		{Message: "second", Response: ptr.ToString("two")},
	}

	prompt, err := Assemble(registry.Resolve(user.PersonaMale), history, "third")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := "Human: first\nAI Friend: one\nHuman: second\nAI Friend: two\n\nHuman: third"
	if !strings.Contains(prompt, want) {
		t.Errorf("Assemble() = %q, want to contain %q", prompt, want)
	}
}
