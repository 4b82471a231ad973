package itemrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/item"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type ItemGormRepository struct {
	db *transaction.Database
}

var _ item.ItemRepository = (*ItemGormRepository)(nil)

func NewItemGormRepository(db *transaction.Database) item.ItemRepository {
	return &ItemGormRepository{db: db}
}

// Create implements item.ItemRepository.
func (repo *ItemGormRepository) Create(ctx context.Context, it *item.Item) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if err := repo.db.GetTx(ctx).Create(dbschema.ItemDtoE(it)).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to create item", "item-repo-001")
	}
	return nil
}

// FindByID implements item.ItemRepository.
func (repo *ItemGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	var model dbschema.Item
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "item not found", "item-repo-002")
	}
	return model.EtoD(), nil
}

// FindByFilter implements item.ItemRepository.
func (repo *ItemGormRepository) FindByFilter(ctx context.Context, filter item.ItemFilter, pagination *query.Pagination) ([]*item.Item, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.Item{})
	if filter.OwnerID != nil {
		base = base.Where("owner_id = ?", *filter.OwnerID)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count items", "item-repo-003")
	}

	var rows []dbschema.Item
	if err := paging.ApplyOrdered(base, pagination, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list items", "item-repo-004")
	}
	result := make([]*item.Item, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

// Update implements item.ItemRepository.
func (repo *ItemGormRepository) Update(ctx context.Context, it *item.Item) error {
	now := time.Now().UTC()
	err := repo.db.GetTx(ctx).Model(&dbschema.Item{}).
		Where("id = ?", it.ID).
		Updates(map[string]interface{}{
			"title":       it.Title,
			"description": it.Description,
			"updated_at":  now,
		}).Error
	if err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to update item", "item-repo-005")
	}
	it.UpdatedAt = now
	return nil
}

// Delete implements item.ItemRepository.
func (repo *ItemGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.GetTx(ctx).Where("id = ?", id).Delete(&dbschema.Item{}).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to delete item", "item-repo-006")
	}
	return nil
}

// DeleteByOwner implements item.ItemRepository.
func (repo *ItemGormRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := repo.db.GetTx(ctx).Where("owner_id = ?", ownerID).Delete(&dbschema.Item{}).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to delete owned items", "item-repo-007")
	}
	return nil
}
