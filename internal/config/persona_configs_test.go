package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writePersonaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "personas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write persona file: %v", err)
	}
	return path
}

func TestLoadPersonaBootstrapConfig(t *testing.T) {
	path := writePersonaFile(t, `
personas:
  - persona: Female
    template: "You are Emma.\n{{.History}}\nHuman: {{.Input}}\nAI Friend: "
`)

	cfg, err := LoadPersonaBootstrapConfig(path)
	if err != nil {
		t.Fatalf("LoadPersonaBootstrapConfig() error = %v", err)
	}

	tmpl, ok := cfg.TemplateFor("female")
	if !ok {
		t.Fatal("expected override for female persona")
	}
	if tmpl == "" {
		t.Error("override template is empty")
	}
	if _, ok := cfg.TemplateFor("male"); ok {
		t.Error("unexpected override for male persona")
	}
}

func TestLoadPersonaBootstrapConfigUnknownPersona(t *testing.T) {
	path := writePersonaFile(t, `
personas:
  - persona: robot
    template: "{{.History}} {{.Input}}"
`)

	if _, err := LoadPersonaBootstrapConfig(path); err == nil {
		t.Fatal("expected error for unknown persona")
	}
}

func TestLoadPersonaBootstrapConfigMissingSlots(t *testing.T) {
	path := writePersonaFile(t, `
personas:
  - persona: male
    template: "no slots here"
`)

	if _, err := LoadPersonaBootstrapConfig(path); err == nil {
		t.Fatal("expected error for template without history and input slots")
	}
}
