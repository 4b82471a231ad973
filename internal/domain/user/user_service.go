package user

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/crypto"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type UserService struct {
	repo     UserRepository
	roles    RoleLookup
	items    OwnedItemsRemover
	uow      UnitOfWork
	validate *validator.Validate
}

func NewUserService(repo UserRepository, roles RoleLookup, items OwnedItemsRemover, uow UnitOfWork) *UserService {
	return &UserService{
		repo:     repo,
		roles:    roles,
		items:    items,
		uow:      uow,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) CreateUser(ctx context.Context, in UserCreate) (*User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "user validation failed", err, "user-create-001")
	}
	if err := s.ensureEmailFree(ctx, in.Email, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to hash password", err, "user-create-002")
	}

	u := &User{
		ID:             uuid.New(),
		Email:          in.Email,
		FullName:       in.FullName,
		IsActive:       in.IsActive,
		IsSuperuser:    in.IsSuperuser,
		RoleID:         in.RoleID,
		HashedPassword: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
	}
	return u, nil
}

// Authenticate returns the active user owning email and password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "incorrect email or password", nil, "user-auth-001")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}
	if err := crypto.VerifyPassword(u.HashedPassword, password); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "incorrect email or password", nil, "user-auth-001")
	}
	if !u.IsActive {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "inactive user", nil, "user-auth-002")
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "user not found")
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter UserFilter, pagination *query.Pagination) ([]*User, int64, error) {
	users, total, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list users")
	}
	return users, total, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*User, error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "user validation failed", err, "user-update-001")
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != u.Email {
		if err := s.ensureEmailFree(ctx, *patch.Email, id); err != nil {
			return nil, err
		}
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := crypto.HashPassword(*patch.Password)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to hash password", err, "user-update-002")
		}
		u.HashedPassword = hash
	}
	if patch.FullName != nil {
		u.FullName = patch.FullName
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.IsSuperuser != nil {
		u.IsSuperuser = *patch.IsSuperuser
	}
	if patch.RoleID != nil {
		if err := s.checkRole(ctx, patch.RoleID); err != nil {
			return nil, err
		}
		u.RoleID = patch.RoleID
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update user")
	}
	return u, nil
}

// UpdateMe lets a user change their own email and name only.
func (s *UserService) UpdateMe(ctx context.Context, id uuid.UUID, email, fullName *string) (*User, error) {
	return s.UpdateUser(ctx, id, UserPatch{Email: email, FullName: fullName})
}

// UpdatePassword replaces the password after checking the current one.
func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := crypto.VerifyPassword(u.HashedPassword, current); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "incorrect password", nil, "user-password-001")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to verify password", err, "user-password-002")
	}
	if current == next {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "new password cannot be the same as the current one", nil, "user-password-003")
	}
	_, err = s.UpdateUser(ctx, id, UserPatch{Password: &next})
	return err
}

// DeleteUser removes a user and the items they own. A superuser cannot delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.ID == actorID && u.IsSuperuser {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "superusers are not allowed to delete themselves", nil, "user-delete-001")
	}
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.items.DeleteByOwner(txCtx, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete user")
	}
	return nil
}

// EnsureSuperuser creates the first superuser when no account with email exists.
func (s *UserService) EnsureSuperuser(ctx context.Context, email, password string, roleID *uuid.UUID) (*User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return existing, false, nil
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up superuser")
	}
	created, err := s.CreateUser(ctx, UserCreate{
		Email:       email,
		Password:    password,
		IsActive:    true,
		IsSuperuser: true,
		RoleID:      roleID,
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing.ID != self {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "the user with this email already exists in the system", nil, "user-email-001")
	}
	if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check email")
	}
	return nil
}

func (s *UserService) checkRole(ctx context.Context, roleID *uuid.UUID) error {
	if roleID == nil {
		return nil
	}
	ok, err := s.roles.RoleExists(ctx, *roleID)
	if err != nil {
		return err
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role does not exist", nil, "user-role-001")
	}
	return nil
}
