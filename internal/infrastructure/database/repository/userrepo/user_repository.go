package userrepo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.UserRepository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.UserRepository {
	return &UserGormRepository{db: db}
}

// Create implements user.UserRepository.
func (repo *UserGormRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	model := dbschema.UserDtoE(u)
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to create user", "user-repo-001")
	}
	return nil
}

// FindByID implements user.UserRepository.
func (repo *UserGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model dbschema.User
	if err := repo.db.GetTx(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "user not found", "user-repo-002")
	}
	return model.EtoD(), nil
}

// FindByEmail matches emails case-insensitively.
func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model dbschema.User
	err := repo.db.GetTx(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error
	if err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "user not found", "user-repo-003")
	}
	return model.EtoD(), nil
}

// FindByFilter implements user.UserRepository.
func (repo *UserGormRepository) FindByFilter(ctx context.Context, filter user.UserFilter, pagination *query.Pagination) ([]*user.User, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.User{})
	if filter.IsActive != nil {
		base = base.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsSuperuser != nil {
		base = base.Where("is_superuser = ?", *filter.IsSuperuser)
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		base = base.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count users", "user-repo-004")
	}

	var rows []dbschema.User
	if err := paging.ApplyOrdered(base, pagination, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list users", "user-repo-005")
	}
	result := make([]*user.User, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

// Update implements user.UserRepository.
func (repo *UserGormRepository) Update(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	err := repo.db.GetTx(ctx).Model(&dbschema.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"email":           u.Email,
			"full_name":       u.FullName,
			"is_active":       u.IsActive,
			"is_superuser":    u.IsSuperuser,
			"role_id":         u.RoleID,
			"hashed_password": u.HashedPassword,
			"updated_at":      now,
		}).Error
	if err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to update user", "user-repo-006")
	}
	u.UpdatedAt = now
	return nil
}

// Delete implements user.UserRepository.
func (repo *UserGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.GetTx(ctx).Where("id = ?", id).Delete(&dbschema.User{}).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to delete user", "user-repo-007")
	}
	return nil
}
