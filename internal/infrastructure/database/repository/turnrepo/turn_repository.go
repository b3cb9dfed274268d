package turnrepo

import (
	"context"

	"gorm.io/gorm"

	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/infrastructure/database/dbschema"
	"friendbot/companion-api/internal/infrastructure/database/transaction"
	"friendbot/companion-api/internal/utils/functional"
	"friendbot/companion-api/internal/utils/platformerrors"
)

const defaultPageSize = 20

type TurnGormRepository struct {
	db *transaction.Database
}

var _ chat.TurnRepository = (*TurnGormRepository)(nil)

func NewTurnGormRepository(db *transaction.Database) chat.TurnRepository {
	return &TurnGormRepository{db: db}
}

func (repo *TurnGormRepository) Create(ctx context.Context, turn *chat.Turn) error {
	entity := dbschema.NewSchemaTurn(turn)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create turn",
			err,
			"2e8f41ac-9d07-4b63-85f2-c1a6d3e09b74",
		)
	}
	turn.ID = entity.ID
	turn.CreatedAt = entity.CreatedAt
	turn.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *TurnGormRepository) Update(ctx context.Context, turn *chat.Turn) error {
	entity := dbschema.NewSchemaTurn(turn)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update turn",
			err,
			"90c5b2d7-4e18-4f6a-b3c9-27a80d1e65f3",
		)
	}
	turn.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *TurnGormRepository) FindByID(ctx context.Context, id uint) (*chat.Turn, error) {
	var entity dbschema.Turn
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
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
			"failed to find turn by ID",
			err,
			"6a3d9e12-b850-4c7f-92e4-f07c5b1a83d6",
		)
	}
	return entity.EtoD(), nil
}

func (repo *TurnGormRepository) FindByPublicID(ctx context.Context, publicID string) (*chat.Turn, error) {
	var entity dbschema.Turn
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
			"failed to find turn by public ID",
			err,
			"d14f7a86-02ce-4591-b6d8-3e9a05c72f18",
		)
	}
	return entity.EtoD(), nil
}

// RecentByUserID returns the user's newest turns first, at most limit rows.
func (repo *TurnGormRepository) RecentByUserID(ctx context.Context, userID uint, limit int) ([]*chat.Turn, error) {
	var entities []*dbschema.Turn
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list recent turns",
			err,
			"83b60e5d-f492-4a17-9c2b-51d8e7a30f46",
		)
	}
	return functional.Map(entities, func(e *dbschema.Turn) *chat.Turn { return e.EtoD() }), nil
}

func (repo *TurnGormRepository) FindByFilter(ctx context.Context, filter chat.TurnFilter, pagination *query.Pagination) ([]*chat.Turn, error) {
	tx := repo.applyFilter(ctx, filter).
		Order("created_at DESC, id DESC").
		Limit(pagination.EffectiveLimit(defaultPageSize))
	if offset := pagination.EffectiveOffset(); offset > 0 {
		tx = tx.Offset(offset)
	}

	var entities []*dbschema.Turn
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list turns",
			err,
			"c97a02e4-6d31-48b5-a8f0-29e6c5d17b83",
		)
	}
	return functional.Map(entities, func(e *dbschema.Turn) *chat.Turn { return e.EtoD() }), nil
}

func (repo *TurnGormRepository) Count(ctx context.Context, filter chat.TurnFilter) (int64, error) {
	var count int64
	if err := repo.applyFilter(ctx, filter).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count turns",
			err,
			"1f5c8d30-7a96-4e42-b2d7-08a3e69f51c4",
		)
	}
	return count, nil
}

func (repo *TurnGormRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&dbschema.Turn{})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete turns",
			result.Error,
			"4b08d2f9-5e67-4a31-9c85-d71f0e3a26b9",
		)
	}
	return result.RowsAffected, nil
}

func (repo *TurnGormRepository) applyFilter(ctx context.Context, filter chat.TurnFilter) *gorm.DB {
	tx := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Turn{})
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	return tx
}
