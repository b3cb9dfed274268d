package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for packages that cannot take injected config
var globalConfig *Config

// Config holds all environment backed configuration for companion-api.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// PostgreSQL
	DatabaseURL          string `env:"DATABASE_URL,notEmpty"`
	DBPostgresqlRead1DSN string `env:"DB_POSTGRESQL_READ1_DSN"`

	// Auth
	JWTSecret      string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	TokenIssuer    string        `env:"TOKEN_ISSUER" envDefault:"companion-api"`
	AuthClockSkew  time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"30s"`

	// Generation provider
	OpenAIAPIKey          string        `env:"OPENAI_API_KEY,notEmpty"`
	OpenAIBaseURL         string        `env:"OPENAI_BASE_URL"`
	GenerationModel       string        `env:"GENERATION_MODEL" envDefault:"gpt-3.5-turbo-instruct"`
	GenerationTemperature float32       `env:"GENERATION_TEMPERATURE" envDefault:"0.7"`
	GenerationTimeout     time.Duration `env:"GENERATION_TIMEOUT" envDefault:"30s"`
	GenerationMaxTokens   int           `env:"GENERATION_MAX_TOKENS" envDefault:"512"`

	// Usage accounting (USD per 1k tokens)
	PromptTokenRate     string `env:"PROMPT_TOKEN_RATE" envDefault:"0.0015"`
	CompletionTokenRate string `env:"COMPLETION_TOKEN_RATE" envDefault:"0.002"`

	// Persona templates
	PersonaConfigsFile string `env:"PERSONA_CONFIGS_FILE"`

	// Journal index service
	JournalIndexEnabled     bool          `env:"JOURNAL_INDEX_ENABLED" envDefault:"false"`
	JournalIndexURL         string        `env:"JOURNAL_INDEX_URL"`
	JournalIndexTimeout     time.Duration `env:"JOURNAL_INDEX_TIMEOUT" envDefault:"5s"`
	IndexSyncIntervalMinute int           `env:"INDEX_SYNC_INTERVAL_MINUTES" envDefault:"15"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"companion-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"friendbot"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Loaded persona overrides, not env backed
	PersonaOverrides *PersonaBootstrapConfig `env:"-"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.OpenAIBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.OpenAIBaseURL); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_BASE_URL: %w", err)
		}
	}

	if cfg.JournalIndexEnabled {
		if cfg.JournalIndexURL == "" {
			return nil, errors.New("JOURNAL_INDEX_URL must be set when JOURNAL_INDEX_ENABLED is true")
		}
		if _, err := url.ParseRequestURI(cfg.JournalIndexURL); err != nil {
			return nil, fmt.Errorf("invalid JOURNAL_INDEX_URL: %w", err)
		}
	}

	if cfg.GenerationTemperature < 0 || cfg.GenerationTemperature > 2 {
		return nil, fmt.Errorf("GENERATION_TEMPERATURE out of range: %f", cfg.GenerationTemperature)
	}

	if file := strings.TrimSpace(cfg.PersonaConfigsFile); file != "" {
		overrides, err := LoadPersonaBootstrapConfig(file)
		if err != nil {
			return nil, fmt.Errorf("load persona configs: %w", err)
		}
		cfg.PersonaOverrides = overrides
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance for backwards compatibility.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
