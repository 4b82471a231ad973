package userreq

import "github.com/google/uuid"

type CreateUserRequest struct {
	Email       string     `json:"email" binding:"required"`
	Password    string     `json:"password" binding:"required"`
	FullName    *string    `json:"full_name"`
	IsActive    *bool      `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	RoleID      *uuid.UUID `json:"role_id"`
}

type UpdateUserRequest struct {
	Email       *string    `json:"email"`
	Password    *string    `json:"password"`
	FullName    *string    `json:"full_name"`
	IsActive    *bool      `json:"is_active"`
	IsSuperuser *bool      `json:"is_superuser"`
	RoleID      *uuid.UUID `json:"role_id"`
}

type UpdateMeRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}
