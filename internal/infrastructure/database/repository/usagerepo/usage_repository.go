package usagerepo

import (
	"context"
	"time"

	"friendbot/companion-api/internal/domain/tokenusage"
	"friendbot/companion-api/internal/infrastructure/database/transaction"
	"friendbot/companion-api/internal/utils/platformerrors"
)

type UsageGormRepository struct {
	db *transaction.Database
}

var _ tokenusage.Repository = (*UsageGormRepository)(nil)

func NewUsageGormRepository(db *transaction.Database) tokenusage.Repository {
	return &UsageGormRepository{db: db}
}

func (repo *UsageGormRepository) Create(ctx context.Context, usage *tokenusage.TokenUsage) error {
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(usage).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to record token usage",
			err,
			"9d23b7f0-5a81-4c64-b0e9-f47a81d25c36",
		)
	}
	return nil
}

func (repo *UsageGormRepository) GetUserSummary(ctx context.Context, userID uint, startDate, endDate time.Time) (*tokenusage.UsageSummary, error) {
	var summary tokenusage.UsageSummary
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&tokenusage.TokenUsage{}).
		Select(`COALESCE(SUM(prompt_tokens), 0) AS total_prompt_tokens,
			COALESCE(SUM(completion_tokens), 0) AS total_completion_tokens,
			COALESCE(SUM(total_tokens), 0) AS total_tokens,
			COUNT(*) AS request_count,
			COALESCE(SUM(estimated_cost_usd), 0) AS estimated_cost_usd`).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startDate, endDate).
		Scan(&summary).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to summarize token usage",
			err,
			"e581a4c9-07d3-4f26-9b80-c36d91f5a2e7",
		)
	}
	return &summary, nil
}
