package tokenusage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for token usage data access.
type Repository interface {
	Create(ctx context.Context, usage *TokenUsage) error
	GetUserSummary(ctx context.Context, userID uint, startDate, endDate time.Time) (*UsageSummary, error)
}

// Rates are USD prices per 1000 tokens.
type Rates struct {
	PromptPer1K     decimal.Decimal
	CompletionPer1K decimal.Decimal
}

var perThousand = decimal.NewFromInt(1000)

// Cost returns the estimated USD cost for a single generation.
func (r Rates) Cost(promptTokens, completionTokens int) decimal.Decimal {
	prompt := r.PromptPer1K.Mul(decimal.NewFromInt(int64(promptTokens))).Div(perThousand)
	completion := r.CompletionPer1K.Mul(decimal.NewFromInt(int64(completionTokens))).Div(perThousand)
	return prompt.Add(completion)
}

// Service records token usage events and answers usage queries.
type Service struct {
	repo  Repository
	model string
	rates Rates
}

// NewService creates a new token usage service.
func NewService(repo Repository, model string, rates Rates) *Service {
	return &Service{repo: repo, model: model, rates: rates}
}

// Record stores one usage event. It satisfies the chat pipeline's usage
// recorder contract.
func (s *Service) Record(ctx context.Context, userID, turnID uint, promptTokens, completionTokens int) error {
	usage := &TokenUsage{
		UserID:           userID,
		TurnID:           turnID,
		Model:            s.model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		EstimatedCostUSD: s.rates.Cost(promptTokens, completionTokens),
	}
	return s.repo.Create(ctx, usage)
}

// GetMyUsage retrieves a usage summary for a user within a date range.
func (s *Service) GetMyUsage(ctx context.Context, userID uint, startDate, endDate time.Time) (*UsageSummary, error) {
	summary, err := s.repo.GetUserSummary(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return &UsageSummary{EstimatedCostUSD: decimal.Zero}, nil
	}
	return summary, nil
}
