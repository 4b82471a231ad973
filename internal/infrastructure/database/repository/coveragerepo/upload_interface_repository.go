package coveragerepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type UploadInterfaceGormRepository struct {
	db *transaction.Database
}

var _ coverage.UploadInterfaceRepository = (*UploadInterfaceGormRepository)(nil)

func NewUploadInterfaceGormRepository(db *transaction.Database) coverage.UploadInterfaceRepository {
	return &UploadInterfaceGormRepository{db: db}
}

// Exists implements coverage.UploadInterfaceRepository.
func (repo *UploadInterfaceGormRepository) Exists(ctx context.Context, url, name string) (bool, error) {
	var count int64
	err := repo.db.GetTx(ctx).Model(&dbschema.UploadInterface{}).
		Where("url = ? AND name = ?", url, name).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.FromGormError(ctx, err, "failed to check uploaded interface", "upload-repo-001")
	}
	return count > 0, nil
}

// CreateBatch implements coverage.UploadInterfaceRepository.
func (repo *UploadInterfaceGormRepository) CreateBatch(ctx context.Context, interfaces []*coverage.UploadInterface) error {
	if len(interfaces) == 0 {
		return nil
	}
	models := make([]*dbschema.UploadInterface, len(interfaces))
	for i, u := range interfaces {
		models[i] = dbschema.UploadInterfaceDtoE(u)
	}
	if err := repo.db.GetTx(ctx).CreateInBatches(&models, createBatchSize).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to save uploaded interfaces", "upload-repo-002")
	}
	for i, m := range models {
		interfaces[i].ID = m.ID
		interfaces[i].CreatedAt = m.CreatedAt
		interfaces[i].UpdatedAt = m.UpdatedAt
	}
	return nil
}

// FindByFilter implements coverage.UploadInterfaceRepository.
func (repo *UploadInterfaceGormRepository) FindByFilter(ctx context.Context, filter coverage.UploadFilter, pagination *query.Pagination) ([]*coverage.UploadInterface, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.UploadInterface{})
	if filter.Name != nil {
		base = base.Where("name = ?", *filter.Name)
	}
	if filter.Search != nil && *filter.Search != "" {
		base = base.Where("url LIKE ?", "%"+*filter.Search+"%")
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count uploaded interfaces", "upload-repo-003")
	}

	var rows []dbschema.UploadInterface
	if err := paging.Apply(base, pagination).Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list uploaded interfaces", "upload-repo-004")
	}
	result := make([]*coverage.UploadInterface, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}
