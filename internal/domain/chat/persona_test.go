package chat

import (
	"strings"
	"testing"

	"friendbot/companion-api/internal/domain/user"
)

func TestResolveIsTotal(t *testing.T) {
	registry, err := NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}

	tests := []struct {
		preference  user.PersonaPreference
		wantPersona user.PersonaPreference
	}{
		{user.PersonaMale, user.PersonaMale},
		{user.PersonaFemale, user.PersonaFemale},
		{user.PersonaNeutral, user.PersonaNeutral},
		{"", user.PersonaNeutral},
		{"robot", user.PersonaNeutral},
		{"MALE", user.PersonaNeutral},
	}

	for _, tt := range tests {
		tmpl := registry.Resolve(tt.preference)
		if tmpl == nil {
			t.Fatalf("Resolve(%q) returned nil", tt.preference)
		}
		if tmpl.Persona != tt.wantPersona {
			t.Errorf("Resolve(%q).Persona = %q, want %q", tt.preference, tmpl.Persona, tt.wantPersona)
		}
	}
}

func TestTemplatesNamePersonas(t *testing.T) {
	registry, err := NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}

	names := map[user.PersonaPreference]string{
		user.PersonaMale:    "Alex",
		user.PersonaFemale:  "Emma",
		user.PersonaNeutral: "Jordan",
	}
	for persona, name := range names {
		if !strings.Contains(registry.Resolve(persona).Source(), name) {
			t.Errorf("%s template does not mention %s", persona, name)
		}
	}
}

func TestRegistryOverrides(t *testing.T) {
	override := "Custom persona.\n{{.History}}\nHuman: {{.Input}}\nAI Friend: "
	registry, err := NewTemplateRegistry(map[user.PersonaPreference]string{
		user.PersonaNeutral: override,
	})
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}

	if got := registry.Resolve(user.PersonaNeutral).Source(); got != override {
		t.Errorf("override not applied, got %q", got)
	}
	if got := registry.Resolve(user.PersonaMale).Source(); got == override {
		t.Error("override leaked to another persona")
	}
}

func TestRegistryRejectsUnknownOverride(t *testing.T) {
	_, err := NewTemplateRegistry(map[user.PersonaPreference]string{
		"robot": "{{.History}} {{.Input}}",
	})
	if err == nil {
		t.Error("expected error for unknown persona override")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	registry, err := NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}
	tmpl := registry.Resolve(user.PersonaFemale)

	first, err := tmpl.Render("Human: hi\nAI Friend: hello\n", "how are you?")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := tmpl.Render("Human: hi\nAI Friend: hello\n", "how are you?")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if first != second {
		t.Error("Render is not deterministic")
	}
	if !strings.Contains(first, "Human: how are you?") {
		t.Errorf("rendered prompt missing input line: %q", first)
	}
}

func TestRenderEmptyHistory(t *testing.T) {
	registry, err := NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}

	prompt, err := registry.Resolve(user.PersonaNeutral).Render("", "Hello")
	if err != nil {
		t.Fatalf("Render() with empty history error = %v", err)
	}
	if !strings.Contains(prompt, "Human: Hello") {
		t.Errorf("rendered prompt missing input line: %q", prompt)
	}
}
