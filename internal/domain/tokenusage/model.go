// Package tokenusage records per-exchange token consumption and the
// estimated provider cost.
package tokenusage

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenUsage is one generation's token accounting, tied to the chat turn
// it answered.
type TokenUsage struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	UserID           uint            `gorm:"column:user_id;not null;index"`
	TurnID           uint            `gorm:"column:turn_id;not null;index"`
	Model            string          `gorm:"column:model;not null"`
	PromptTokens     int             `gorm:"column:prompt_tokens;not null;default:0"`
	CompletionTokens int             `gorm:"column:completion_tokens;not null;default:0"`
	TotalTokens      int             `gorm:"column:total_tokens;not null;default:0"`
	EstimatedCostUSD decimal.Decimal `gorm:"column:estimated_cost_usd;type:decimal(10,6)"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default plural name; it must stay schema
// qualified because an explicit name bypasses the naming strategy prefix.
func (TokenUsage) TableName() string {
	return "companion.token_usage"
}

// UsageSummary aggregates a user's consumption over a period.
type UsageSummary struct {
	TotalPromptTokens     int64           `json:"total_prompt_tokens"`
	TotalCompletionTokens int64           `json:"total_completion_tokens"`
	TotalTokens           int64           `json:"total_tokens"`
	RequestCount          int64           `json:"request_count"`
	EstimatedCostUSD      decimal.Decimal `json:"estimated_cost_usd"`
}
