package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PersonaBootstrapEntry overrides the prompt template for one persona.
type PersonaBootstrapEntry struct {
	Persona  string `yaml:"persona"`
	Template string `yaml:"template"`
}

// PersonaBootstrapConfig holds persona template overrides loaded from file.
type PersonaBootstrapConfig struct {
	entries map[string]string
}

// Entries returns a copy of the configured persona overrides.
func (c *PersonaBootstrapConfig) Entries() map[string]string {
	if c == nil {
		return nil
	}
	out := make(map[string]string, len(c.entries))
	for persona, tmpl := range c.entries {
		out[persona] = tmpl
	}
	return out
}

// TemplateFor returns the override template for the persona, if configured.
func (c *PersonaBootstrapConfig) TemplateFor(persona string) (string, bool) {
	if c == nil {
		return "", false
	}
	tmpl, ok := c.entries[strings.ToLower(strings.TrimSpace(persona))]
	return tmpl, ok
}

var knownPersonas = map[string]bool{
	"male":    true,
	"female":  true,
	"neutral": true,
}

// LoadPersonaBootstrapConfig parses the yaml file at the provided path.
// Each entry must name a known persona and carry a template containing
// both the {{.History}} and {{.Input}} slots.
func LoadPersonaBootstrapConfig(path string) (*PersonaBootstrapConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("persona config path is empty")
	}

	cleanPath := filepath.Clean(path)
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read persona config %s: %w", cleanPath, err)
	}

	var doc struct {
		Personas []PersonaBootstrapEntry `yaml:"personas"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse persona config %s: %w", cleanPath, err)
	}

	cfg := &PersonaBootstrapConfig{entries: make(map[string]string)}
	for i, entry := range doc.Personas {
		persona := strings.ToLower(strings.TrimSpace(entry.Persona))
		if !knownPersonas[persona] {
			return nil, fmt.Errorf("persona config entry %d: unknown persona %q", i, entry.Persona)
		}
		if !strings.Contains(entry.Template, "{{.History}}") || !strings.Contains(entry.Template, "{{.Input}}") {
			return nil, fmt.Errorf("persona config entry %d: template must contain {{.History}} and {{.Input}}", i)
		}
		cfg.entries[persona] = entry.Template
	}

	return cfg, nil
}
