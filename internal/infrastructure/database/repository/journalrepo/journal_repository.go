package journalrepo

import (
	"context"

	"gorm.io/gorm"

	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/infrastructure/database/dbschema"
	"friendbot/companion-api/internal/infrastructure/database/transaction"
	"friendbot/companion-api/internal/utils/functional"
	"friendbot/companion-api/internal/utils/platformerrors"
)

type JournalGormRepository struct {
	db *transaction.Database
}

var _ journal.Repository = (*JournalGormRepository)(nil)

func NewJournalGormRepository(db *transaction.Database) journal.Repository {
	return &JournalGormRepository{db: db}
}

func (repo *JournalGormRepository) Create(ctx context.Context, entry *journal.Journal) error {
	entity := dbschema.NewSchemaJournal(entry)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create journal entry",
			err,
			"e24d81f6-3c95-4a07-b6e1-f82d09c35a74",
		)
	}
	entry.ID = entity.ID
	entry.CreatedAt = entity.CreatedAt
	entry.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *JournalGormRepository) Update(ctx context.Context, entry *journal.Journal) error {
	entity := dbschema.NewSchemaJournal(entry)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update journal entry",
			err,
			"57a93be0-1d46-4f28-8c05-b39e62d17f84",
		)
	}
	entry.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *JournalGormRepository) Delete(ctx context.Context, id uint) error {
	if err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Journal{}).
		Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete journal entry",
			err,
			"b60f24a8-7e91-4d53-a2c7-09d8e51f36b2",
		)
	}
	return nil
}

func (repo *JournalGormRepository) FindByPublicID(ctx context.Context, publicID string) (*journal.Journal, error) {
	var entity dbschema.Journal
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find journal entry by public ID",
			err,
			"a195c7e3-8d04-4b62-97f5-31c8d0e64a29",
		)
	}
	return entity.EtoD(), nil
}

func (repo *JournalGormRepository) FindByFilter(ctx context.Context, filter journal.Filter, pagination *query.Pagination) ([]*journal.Journal, error) {
	tx := repo.applyFilter(ctx, filter).
		Order("created_at DESC, id DESC").
		Limit(pagination.EffectiveLimit(journal.DefaultPageSize))
	if offset := pagination.EffectiveOffset(); offset > 0 {
		tx = tx.Offset(offset)
	}

	var entities []*dbschema.Journal
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list journal entries",
			err,
			"f38b06d5-27c1-4e94-a5d0-8e61b9f42c07",
		)
	}
	return functional.Map(entities, func(e *dbschema.Journal) *journal.Journal { return e.EtoD() }), nil
}

func (repo *JournalGormRepository) Count(ctx context.Context, filter journal.Filter) (int64, error) {
	var count int64
	if err := repo.applyFilter(ctx, filter).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count journal entries",
			err,
			"d71e49b2-6f08-4c35-82ae-95d0c3f61b78",
		)
	}
	return count, nil
}

func (repo *JournalGormRepository) applyFilter(ctx context.Context, filter journal.Filter) *gorm.DB {
	tx := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Journal{})
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	if filter.Keyword != nil {
		pattern := "%" + *filter.Keyword + "%"
		tx = tx.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if filter.Tag != nil {
		tx = tx.Where("? = ANY(tags)", *filter.Tag)
	}
	return tx
}
