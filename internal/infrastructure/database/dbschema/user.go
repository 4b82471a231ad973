package dbschema

import (
	"time"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Role{}, User{}, Item{})
}

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email          string     `gorm:"size:255;not null;uniqueIndex"`
	FullName       *string    `gorm:"size:255"`
	IsActive       bool       `gorm:"not null"`
	IsSuperuser    bool       `gorm:"not null"`
	RoleID         *uuid.UUID `gorm:"type:uuid"`
	HashedPassword string     `gorm:"size:255;not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		IsActive:       u.IsActive,
		IsSuperuser:    u.IsSuperuser,
		RoleID:         u.RoleID,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func UserDtoE(u *user.User) *User {
	return &User{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		IsActive:       u.IsActive,
		IsSuperuser:    u.IsSuperuser,
		RoleID:         u.RoleID,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
