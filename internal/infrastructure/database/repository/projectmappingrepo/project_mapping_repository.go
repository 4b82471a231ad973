package projectmappingrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type ProjectMappingGormRepository struct {
	db *transaction.Database
}

var _ projectmapping.ProjectMappingRepository = (*ProjectMappingGormRepository)(nil)

func NewProjectMappingGormRepository(db *transaction.Database) projectmapping.ProjectMappingRepository {
	return &ProjectMappingGormRepository{db: db}
}

// Create implements projectmapping.ProjectMappingRepository.
func (repo *ProjectMappingGormRepository) Create(ctx context.Context, mapping *projectmapping.ProjectMapping) error {
	model := dbschema.ProjectNameMappingDtoE(mapping)
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to create project mapping", "mapping-repo-001")
	}
	mapping.ID = model.ID
	mapping.CreatedAt = model.CreatedAt
	mapping.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID implements projectmapping.ProjectMappingRepository.
func (repo *ProjectMappingGormRepository) FindByID(ctx context.Context, id uint) (*projectmapping.ProjectMapping, error) {
	var model dbschema.ProjectNameMapping
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "project mapping not found", "mapping-repo-002")
	}
	return model.EtoD(), nil
}

// FindOneByEurekaName returns the oldest mapping for eurekaName.
func (repo *ProjectMappingGormRepository) FindOneByEurekaName(ctx context.Context, eurekaName string) (*projectmapping.ProjectMapping, error) {
	var model dbschema.ProjectNameMapping
	err := repo.db.GetTx(ctx).
		Where("eureka_name = ?", eurekaName).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "project mapping not found", "mapping-repo-003")
	}
	return model.EtoD(), nil
}

// FindByFilter implements projectmapping.ProjectMappingRepository.
func (repo *ProjectMappingGormRepository) FindByFilter(ctx context.Context, filter projectmapping.ProjectMappingFilter, pagination *query.Pagination) ([]*projectmapping.ProjectMapping, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.ProjectNameMapping{})
	if filter.EurekaName != nil {
		base = base.Where("eureka_name = ?", *filter.EurekaName)
	}
	if filter.UploadName != nil {
		base = base.Where("upload_name = ?", *filter.UploadName)
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		base = base.Where("eureka_name LIKE ? OR upload_name LIKE ? OR name LIKE ?", like, like, like)
	}

	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count project mappings", "mapping-repo-004")
	}

	var rows []dbschema.ProjectNameMapping
	if err := paging.Apply(base, pagination).Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list project mappings", "mapping-repo-005")
	}

	result := make([]*projectmapping.ProjectMapping, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

// Update implements projectmapping.ProjectMappingRepository.
func (repo *ProjectMappingGormRepository) Update(ctx context.Context, mapping *projectmapping.ProjectMapping) error {
	now := time.Now().UTC()
	err := repo.db.GetTx(ctx).Model(&dbschema.ProjectNameMapping{}).
		Where("id = ?", mapping.ID).
		Updates(map[string]interface{}{
			"upload_name": mapping.UploadName,
			"eureka_name": mapping.EurekaName,
			"name":        mapping.Name,
			"description": mapping.Description,
			"updated_at":  now,
		}).Error
	if err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to update project mapping", "mapping-repo-006")
	}
	mapping.UpdatedAt = now
	return nil
}

// Delete implements projectmapping.ProjectMappingRepository.
func (repo *ProjectMappingGormRepository) Delete(ctx context.Context, id uint) error {
	if err := repo.db.GetTx(ctx).Delete(&dbschema.ProjectNameMapping{}, id).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to delete project mapping", "mapping-repo-007")
	}
	return nil
}
