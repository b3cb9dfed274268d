// Package chat implements the conversation pipeline: persona templates,
// history assembly, generation, and turn recording.
package chat

import (
	"fmt"
	"strings"
	"text/template"

	"friendbot/companion-api/internal/domain/user"
)

// Built-in persona prompt templates. Each carries two slots, History and
// Input, and must render legally even when the history block is empty.
const maleTemplate = `
You are a supportive male friend named Alex who is having a conversation with a human.
You are empathetic, understanding, and offer genuine advice when asked.
Your tone is friendly, casual, and sometimes humorous, like a real male friend would be.
You should respond in a way that feels natural and authentic, not robotic or overly formal.

Current conversation:
{{.History}}
Human: {{.Input}}
AI Friend: `

const femaleTemplate = `
You are a supportive female friend named Emma who is having a conversation with a human.
You are empathetic, understanding, and offer genuine advice when asked.
Your tone is friendly, casual, and sometimes humorous, like a real female friend would be.
You should respond in a way that feels natural and authentic, not robotic or overly formal.

Current conversation:
{{.History}}
Human: {{.Input}}
AI Friend: `

const neutralTemplate = `
You are a supportive friend named Jordan who is having a conversation with a human.
You are empathetic, understanding, and offer genuine advice when asked.
Your tone is friendly, casual, and sometimes humorous, like a real friend would be.
You should respond in a way that feels natural and authentic, not robotic or overly formal.

Current conversation:
{{.History}}
Human: {{.Input}}
AI Friend: `

// PersonaTemplate is a parsed prompt template bound to one persona.
type PersonaTemplate struct {
	Persona user.PersonaPreference
	source  string
	tmpl    *template.Template
}

// Source returns the raw template text.
func (t *PersonaTemplate) Source() string {
	return t.source
}

// Render substitutes the transcript and input into the template slots.
// It is a pure function of its arguments.
func (t *PersonaTemplate) Render(history, input string) (string, error) {
	var sb strings.Builder
	err := t.tmpl.Execute(&sb, struct {
		History string
		Input   string
	}{History: history, Input: input})
	if err != nil {
		return "", fmt.Errorf("render persona template %s: %w", t.Persona, err)
	}
	return sb.String(), nil
}

// TemplateRegistry maps persona preferences to prompt templates.
// Resolution is total: unknown preferences fall back to the neutral persona.
type TemplateRegistry struct {
	templates map[user.PersonaPreference]*PersonaTemplate
}

// NewTemplateRegistry builds the registry from the built-in templates,
// applying any configured overrides. Override templates must already be
// validated to contain both slots.
func NewTemplateRegistry(overrides map[user.PersonaPreference]string) (*TemplateRegistry, error) {
	sources := map[user.PersonaPreference]string{
		user.PersonaMale:    maleTemplate,
		user.PersonaFemale:  femaleTemplate,
		user.PersonaNeutral: neutralTemplate,
	}
	for persona, src := range overrides {
		if _, ok := sources[persona]; !ok {
			return nil, fmt.Errorf("override for unknown persona %q", persona)
		}
		sources[persona] = src
	}

	registry := &TemplateRegistry{templates: make(map[user.PersonaPreference]*PersonaTemplate, len(sources))}
	for persona, src := range sources {
		tmpl, err := template.New(string(persona)).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse persona template %s: %w", persona, err)
		}
		registry.templates[persona] = &PersonaTemplate{Persona: persona, source: src, tmpl: tmpl}
	}

	return registry, nil
}

// Resolve returns the template for the preference, defaulting to neutral
// for unknown or empty values. It never returns nil.
func (r *TemplateRegistry) Resolve(preference user.PersonaPreference) *PersonaTemplate {
	if tmpl, ok := r.templates[preference]; ok {
		return tmpl
	}
	return r.templates[user.PersonaNeutral]
}
