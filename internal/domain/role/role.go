package role

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type Role struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoleCreate struct {
	Name        string  `validate:"required,max=255"`
	Description *string `validate:"omitempty,max=255"`
}

type RolePatch struct {
	Name        *string `validate:"omitempty,min=1,max=255"`
	Description *string `validate:"omitempty,max=255"`
}

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	FindByFilter(ctx context.Context, pagination *query.Pagination) ([]*Role, int64, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoleService struct {
	repo     RoleRepository
	validate *validator.Validate
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *RoleService) CreateRole(ctx context.Context, in RoleCreate) (*Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role validation failed", err, "role-create-001")
	}
	if err := s.ensureNameFree(ctx, in.Name, uuid.Nil); err != nil {
		return nil, err
	}

	r := &Role{ID: uuid.New(), Name: in.Name, Description: in.Description}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create role")
	}
	return r, nil
}

func (s *RoleService) GetRole(ctx context.Context, id uuid.UUID) (*Role, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "role not found")
	}
	return r, nil
}

func (s *RoleService) ListRoles(ctx context.Context, pagination *query.Pagination) ([]*Role, int64, error) {
	roles, total, err := s.repo.FindByFilter(ctx, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list roles")
	}
	return roles, total, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, id uuid.UUID, patch RolePatch) (*Role, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role validation failed", err, "role-update-001")
	}
	r, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		r.Name = name
	}
	if patch.Description != nil {
		r.Description = patch.Description
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update role")
	}
	return r, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRole(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete role")
	}
	return nil
}

// RoleExists reports whether a role with id is stored.
func (s *RoleService) RoleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return false, nil
	}
	return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up role")
}

// EnsureRole returns the role called name, creating it when missing.
func (s *RoleService) EnsureRole(ctx context.Context, name, description string) (*Role, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up role")
	}
	return s.CreateRole(ctx, RoleCreate{Name: name, Description: &description})
}

func (s *RoleService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil && existing.ID != self {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "a role with this name already exists", nil, "role-name-001")
	}
	if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check role name")
	}
	return nil
}
