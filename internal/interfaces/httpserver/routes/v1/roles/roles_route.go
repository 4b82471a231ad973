package roles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/rolehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/rolereq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type RolesRoute struct {
	handler     *rolehandler.RoleHandler
	authHandler *authhandler.AuthHandler
}

func NewRolesRoute(handler *rolehandler.RoleHandler, authHandler *authhandler.AuthHandler) *RolesRoute {
	return &RolesRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (r *RolesRoute) RegisterRouter(router gin.IRouter) {
	roles := router.Group("/roles")
	roles.GET("", r.authHandler.WithUserAuthChain(r.listRoles)...)
	roles.POST("", r.authHandler.WithSuperuserAuthChain(r.createRole)...)
	roles.GET("/:role_id", r.authHandler.WithUserAuthChain(r.getRole)...)
	roles.PATCH("/:role_id", r.authHandler.WithSuperuserAuthChain(r.updateRole)...)
	roles.DELETE("/:role_id", r.authHandler.WithSuperuserAuthChain(r.deleteRole)...)
}

// listRoles godoc
// @Summary List roles
// @Tags Roles API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} responses.PageResponse[role.Role]
// @Router /roles [get]
func (r *RolesRoute) listRoles(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	page, err := r.handler.ListRoles(reqCtx.Request.Context(), pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list roles")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// createRole godoc
// @Summary Create role
// @Tags Roles API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body rolereq.CreateRoleRequest true "New role"
// @Success 201 {object} role.Role
// @Failure 409 {object} responses.ErrorResponse
// @Router /roles [post]
func (r *RolesRoute) createRole(reqCtx *gin.Context) {
	var req rolereq.CreateRoleRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "roles-create-001")
		return
	}
	created, err := r.handler.CreateRole(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create role")
		return
	}
	reqCtx.JSON(http.StatusCreated, created)
}

// getRole godoc
// @Summary Get role
// @Tags Roles API
// @Security BearerAuth
// @Produce json
// @Param role_id path string true "Role ID"
// @Success 200 {object} role.Role
// @Failure 404 {object} responses.ErrorResponse
// @Router /roles/{role_id} [get]
func (r *RolesRoute) getRole(reqCtx *gin.Context) {
	id, err := requests.GetUUIDParam(reqCtx, "role_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid role id")
		return
	}
	found, err := r.handler.GetRole(reqCtx.Request.Context(), id)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get role")
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// updateRole godoc
// @Summary Update role
// @Tags Roles API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param role_id path string true "Role ID"
// @Param request body rolereq.UpdateRoleRequest true "Changes"
// @Success 200 {object} role.Role
// @Failure 404 {object} responses.ErrorResponse
// @Router /roles/{role_id} [patch]
func (r *RolesRoute) updateRole(reqCtx *gin.Context) {
	id, err := requests.GetUUIDParam(reqCtx, "role_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid role id")
		return
	}
	var req rolereq.UpdateRoleRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "roles-update-001")
		return
	}
	updated, err := r.handler.UpdateRole(reqCtx.Request.Context(), id, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update role")
		return
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// deleteRole godoc
// @Summary Delete role
// @Description Users holding the role are detached from it.
// @Tags Roles API
// @Security BearerAuth
// @Produce json
// @Param role_id path string true "Role ID"
// @Success 200 {object} responses.MessageResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /roles/{role_id} [delete]
func (r *RolesRoute) deleteRole(reqCtx *gin.Context) {
	id, err := requests.GetUUIDParam(reqCtx, "role_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid role id")
		return
	}
	if err := r.handler.DeleteRole(reqCtx.Request.Context(), id); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete role")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("Role deleted successfully"))
}
