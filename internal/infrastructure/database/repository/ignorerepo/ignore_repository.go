package ignorerepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type IgnoreGormRepository struct {
	db *transaction.Database
}

var _ ignore.IgnoreRepository = (*IgnoreGormRepository)(nil)

func NewIgnoreGormRepository(db *transaction.Database) ignore.IgnoreRepository {
	return &IgnoreGormRepository{db: db}
}

func (repo *IgnoreGormRepository) Create(ctx context.Context, rule *ignore.IgnoreInterface) error {
	model := dbschema.IgnoreInterfaceDtoE(rule)
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to create ignore rule", "ignore-repo-001")
	}
	rule.ID = model.ID
	rule.CreatedAt = model.CreatedAt
	rule.UpdatedAt = model.UpdatedAt
	return nil
}

func (repo *IgnoreGormRepository) FindByID(ctx context.Context, id uint) (*ignore.IgnoreInterface, error) {
	var model dbschema.IgnoreInterface
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "ignore rule not found", "ignore-repo-002")
	}
	return model.EtoD(), nil
}

func (repo *IgnoreGormRepository) FindAll(ctx context.Context) ([]*ignore.IgnoreInterface, error) {
	var rows []dbschema.IgnoreInterface
	if err := repo.db.GetTx(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "failed to load ignore rules", "ignore-repo-003")
	}
	result := make([]*ignore.IgnoreInterface, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

func (repo *IgnoreGormRepository) FindByFilter(ctx context.Context, filter ignore.IgnoreFilter, pagination *query.Pagination) ([]*ignore.IgnoreInterface, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.IgnoreInterface{})
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		base = base.Where("uri LIKE ? OR description LIKE ?", like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count ignore rules", "ignore-repo-004")
	}

	var rows []dbschema.IgnoreInterface
	if err := paging.Apply(base, pagination).Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list ignore rules", "ignore-repo-005")
	}
	result := make([]*ignore.IgnoreInterface, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

func (repo *IgnoreGormRepository) Update(ctx context.Context, rule *ignore.IgnoreInterface) error {
	now := time.Now().UTC()
	err := repo.db.GetTx(ctx).Model(&dbschema.IgnoreInterface{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"uri":         rule.URI,
			"description": rule.Description,
			"updated_at":  now,
		}).Error
	if err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to update ignore rule", "ignore-repo-006")
	}
	rule.UpdatedAt = now
	return nil
}

func (repo *IgnoreGormRepository) Delete(ctx context.Context, id uint) error {
	if err := repo.db.GetTx(ctx).Delete(&dbschema.IgnoreInterface{}, id).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to delete ignore rule", "ignore-repo-007")
	}
	return nil
}
