package userhandler

import (
	"context"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/userreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type UserHandler struct {
	userService *user.UserService
}

func NewUserHandler(userService *user.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) CreateUser(ctx context.Context, req userreq.CreateUserRequest) (*user.User, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	u, err := h.userService.CreateUser(ctx, user.UserCreate{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		IsActive:    active,
		IsSuperuser: req.IsSuperuser,
		RoleID:      req.RoleID,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create user")
	}
	return u, nil
}

func (h *UserHandler) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return h.userService.GetUser(ctx, id)
}

func (h *UserHandler) ListUsers(ctx context.Context, filter user.UserFilter, pagination *query.Pagination) (*responses.PageResponse[*user.User], error) {
	users, total, err := h.userService.ListUsers(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(users, total, pagination)
	return &page, nil
}

func (h *UserHandler) UpdateUser(ctx context.Context, id uuid.UUID, req userreq.UpdateUserRequest) (*user.User, error) {
	return h.userService.UpdateUser(ctx, id, user.UserPatch{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
		RoleID:      req.RoleID,
	})
}

func (h *UserHandler) UpdateMe(ctx context.Context, id uuid.UUID, req userreq.UpdateMeRequest) (*user.User, error) {
	return h.userService.UpdateMe(ctx, id, req.Email, req.FullName)
}

func (h *UserHandler) UpdatePassword(ctx context.Context, id uuid.UUID, req userreq.UpdatePasswordRequest) error {
	return h.userService.UpdatePassword(ctx, id, req.CurrentPassword, req.NewPassword)
}

func (h *UserHandler) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	return h.userService.DeleteUser(ctx, actorID, id)
}
