package rolehandler

import (
	"context"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/role"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/rolereq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
)

type RoleHandler struct {
	roleService *role.RoleService
}

func NewRoleHandler(roleService *role.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) CreateRole(ctx context.Context, req rolereq.CreateRoleRequest) (*role.Role, error) {
	return h.roleService.CreateRole(ctx, role.RoleCreate{Name: req.Name, Description: req.Description})
}

func (h *RoleHandler) GetRole(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	return h.roleService.GetRole(ctx, id)
}

func (h *RoleHandler) ListRoles(ctx context.Context, pagination *query.Pagination) (*responses.PageResponse[*role.Role], error) {
	roles, total, err := h.roleService.ListRoles(ctx, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(roles, total, pagination)
	return &page, nil
}

func (h *RoleHandler) UpdateRole(ctx context.Context, id uuid.UUID, req rolereq.UpdateRoleRequest) (*role.Role, error) {
	return h.roleService.UpdateRole(ctx, id, role.RolePatch{Name: req.Name, Description: req.Description})
}

func (h *RoleHandler) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return h.roleService.DeleteRole(ctx, id)
}
