// Package inference calls the upstream completion provider.
package inference

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"friendbot/companion-api/internal/config"
	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/infrastructure/metrics"
	"friendbot/companion-api/internal/infrastructure/observability"
)

// OpenAIGenerator produces companion replies through the OpenAI-compatible
// completion API. A request is attempted exactly once; retry policy belongs
// to the caller's error handling, not here.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      zerolog.Logger
}

var _ chat.Generator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator builds a generator from service configuration.
func NewOpenAIGenerator(cfg *config.Config, logger zerolog.Logger) (*OpenAIGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.GenerationModel,
		temperature: cfg.GenerationTemperature,
		maxTokens:   cfg.GenerationMaxTokens,
		timeout:     cfg.GenerationTimeout,
		logger:      logger.With().Str("component", "openai-generator").Logger(),
	}, nil
}

// Generate runs one completion call for the assembled prompt.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (*chat.GenerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := observability.StartSpan(ctx, "inference", "completion",
		attribute.String("gen_ai.request.model", g.model))
	defer span.End()

	start := time.Now()
	resp, err := g.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       g.model,
		Prompt:      prompt,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		metrics.RecordGeneration(g.model, time.Since(start).Seconds(), true)
		observability.RecordError(ctx, err)
		g.logger.Error().
			Err(err).
			Str("model", g.model).
			Dur("elapsed", time.Since(start)).
			Msg("completion request failed")
		return nil, err
	}
	metrics.RecordGeneration(g.model, time.Since(start).Seconds(), false)

	if len(resp.Choices) == 0 {
		return nil, errors.New("completion returned no choices")
	}

	metrics.RecordTokens(g.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	g.logger.Debug().
		Str("model", g.model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("elapsed", time.Since(start)).
		Msg("completion finished")

	return &chat.GenerationResult{
		Text:             strings.TrimSpace(resp.Choices[0].Text),
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
