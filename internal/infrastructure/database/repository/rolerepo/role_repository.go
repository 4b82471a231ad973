package rolerepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/role"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type RoleGormRepository struct {
	db *transaction.Database
}

var _ role.RoleRepository = (*RoleGormRepository)(nil)

func NewRoleGormRepository(db *transaction.Database) role.RoleRepository {
	return &RoleGormRepository{db: db}
}

// Create implements role.RoleRepository.
func (repo *RoleGormRepository) Create(ctx context.Context, r *role.Role) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := repo.db.GetTx(ctx).Create(dbschema.RoleDtoE(r)).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to create role", "role-repo-001")
	}
	return nil
}

// FindByID implements role.RoleRepository.
func (repo *RoleGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	var model dbschema.Role
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "role not found", "role-repo-002")
	}
	return model.EtoD(), nil
}

// FindByName implements role.RoleRepository.
func (repo *RoleGormRepository) FindByName(ctx context.Context, name string) (*role.Role, error) {
	var model dbschema.Role
	if err := repo.db.GetTx(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "role not found", "role-repo-003")
	}
	return model.EtoD(), nil
}

// FindByFilter implements role.RoleRepository.
func (repo *RoleGormRepository) FindByFilter(ctx context.Context, pagination *query.Pagination) ([]*role.Role, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.Role{}).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count roles", "role-repo-004")
	}

	var rows []dbschema.Role
	if err := paging.ApplyOrdered(base, pagination, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list roles", "role-repo-005")
	}
	result := make([]*role.Role, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

// Update implements role.RoleRepository.
func (repo *RoleGormRepository) Update(ctx context.Context, r *role.Role) error {
	now := time.Now().UTC()
	err := repo.db.GetTx(ctx).Model(&dbschema.Role{}).
		Where("id = ?", r.ID).
		Updates(map[string]interface{}{
			"name":        r.Name,
			"description": r.Description,
			"updated_at":  now,
		}).Error
	if err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to update role", "role-repo-006")
	}
	r.UpdatedAt = now
	return nil
}

// Delete clears the role from its users before removing it.
func (repo *RoleGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithTx(ctx, func(ctx context.Context) error {
		tx := repo.db.GetTx(ctx)
		if err := tx.Model(&dbschema.User{}).Where("role_id = ?", id).Update("role_id", nil).Error; err != nil {
			return platformerrors.FromGormError(ctx, err, "failed to detach role from users", "role-repo-007")
		}
		if err := tx.Where("id = ?", id).Delete(&dbschema.Role{}).Error; err != nil {
			return platformerrors.FromGormError(ctx, err, "failed to delete role", "role-repo-008")
		}
		return nil
	})
}
