// Package user manages local accounts that sign in with email and password.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       *string    `json:"full_name,omitempty"`
	IsActive       bool       `json:"is_active"`
	IsSuperuser    bool       `json:"is_superuser"`
	RoleID         *uuid.UUID `json:"role_id,omitempty"`
	HashedPassword string     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type UserCreate struct {
	Email       string  `validate:"required,email,max=255"`
	Password    string  `validate:"required,min=8,max=40"`
	FullName    *string `validate:"omitempty,max=255"`
	IsActive    bool
	IsSuperuser bool
	RoleID      *uuid.UUID
}

type UserPatch struct {
	Email       *string `validate:"omitempty,email,max=255"`
	Password    *string `validate:"omitempty,min=8,max=40"`
	FullName    *string `validate:"omitempty,max=255"`
	IsActive    *bool
	IsSuperuser *bool
	RoleID      *uuid.UUID
}

type UserFilter struct {
	IsActive    *bool
	IsSuperuser *bool
	Search      *string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByFilter(ctx context.Context, filter UserFilter, pagination *query.Pagination) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleLookup verifies role references.
type RoleLookup interface {
	RoleExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// OwnedItemsRemover drops the items owned by a user being deleted.
type OwnedItemsRemover interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
