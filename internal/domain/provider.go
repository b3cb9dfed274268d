package domain

import (
	"fmt"

	"github.com/google/wire"
	"github.com/shopspring/decimal"

	"friendbot/companion-api/internal/config"
	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/domain/tokenusage"
	"friendbot/companion-api/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Chat domain
	ProvideTemplateRegistry,
	chat.NewService,

	// User domain
	user.NewService,

	// Journals
	journal.NewService,

	// Usage accounting
	ProvideUsageRates,
	ProvideUsageService,
)

// ProvideUsageService builds the usage recorder against the configured model.
func ProvideUsageService(repo tokenusage.Repository, cfg *config.Config, rates tokenusage.Rates) *tokenusage.Service {
	return tokenusage.NewService(repo, cfg.GenerationModel, rates)
}

// ProvideTemplateRegistry builds the persona registry, applying any
// template overrides loaded from the persona config file.
func ProvideTemplateRegistry(cfg *config.Config) (*chat.TemplateRegistry, error) {
	var overrides map[user.PersonaPreference]string
	if entries := cfg.PersonaOverrides.Entries(); len(entries) > 0 {
		overrides = make(map[user.PersonaPreference]string, len(entries))
		for persona, tmpl := range entries {
			overrides[user.PersonaPreference(persona)] = tmpl
		}
	}
	return chat.NewTemplateRegistry(overrides)
}

// ProvideUsageRates parses the configured per-1K token prices.
func ProvideUsageRates(cfg *config.Config) (tokenusage.Rates, error) {
	prompt, err := decimal.NewFromString(cfg.PromptTokenRate)
	if err != nil {
		return tokenusage.Rates{}, fmt.Errorf("invalid PROMPT_TOKEN_RATE %q: %w", cfg.PromptTokenRate, err)
	}
	completion, err := decimal.NewFromString(cfg.CompletionTokenRate)
	if err != nil {
		return tokenusage.Rates{}, fmt.Errorf("invalid COMPLETION_TOKEN_RATE %q: %w", cfg.CompletionTokenRate, err)
	}
	return tokenusage.Rates{PromptPer1K: prompt, CompletionPer1K: completion}, nil
}
