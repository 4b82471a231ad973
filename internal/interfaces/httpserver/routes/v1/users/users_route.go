package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/userhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/userreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type UsersRoute struct {
	handler     *userhandler.UserHandler
	authHandler *authhandler.AuthHandler
}

func NewUsersRoute(handler *userhandler.UserHandler, authHandler *authhandler.AuthHandler) *UsersRoute {
	return &UsersRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (r *UsersRoute) RegisterRouter(router gin.IRouter) {
	users := router.Group("/users")
	users.GET("", r.authHandler.WithSuperuserAuthChain(r.listUsers)...)
	users.POST("", r.authHandler.WithSuperuserAuthChain(r.createUser)...)
	users.GET("/me", r.authHandler.WithUserAuthChain(r.getMe)...)
	users.PATCH("/me", r.authHandler.WithUserAuthChain(r.updateMe)...)
	users.PATCH("/me/password", r.authHandler.WithUserAuthChain(r.updatePassword)...)
	users.GET("/:user_id", r.authHandler.WithUserAuthChain(r.getUser)...)
	users.PATCH("/:user_id", r.authHandler.WithSuperuserAuthChain(r.updateUser)...)
	users.DELETE("/:user_id", r.authHandler.WithSuperuserAuthChain(r.deleteUser)...)
}

// listUsers godoc
// @Summary List users
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param is_active query bool false "Filter by active flag"
// @Param q query string false "Search email or name"
// @Success 200 {object} responses.PageResponse[user.User]
// @Failure 403 {object} responses.ErrorResponse
// @Router /users [get]
func (r *UsersRoute) listUsers(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	isActive, err := requests.GetOptionalBoolQuery(reqCtx, "is_active")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid filter")
		return
	}
	isSuperuser, err := requests.GetOptionalBoolQuery(reqCtx, "is_superuser")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid filter")
		return
	}

	filter := user.UserFilter{
		IsActive:    isActive,
		IsSuperuser: isSuperuser,
		Search:      requests.GetOptionalStringQuery(reqCtx, "q"),
	}
	page, err := r.handler.ListUsers(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list users")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// createUser godoc
// @Summary Create user
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body userreq.CreateUserRequest true "New user"
// @Success 201 {object} user.User
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /users [post]
func (r *UsersRoute) createUser(reqCtx *gin.Context) {
	var req userreq.CreateUserRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "users-create-001")
		return
	}
	created, err := r.handler.CreateUser(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create user")
		return
	}
	reqCtx.JSON(http.StatusCreated, created)
}

// getMe godoc
// @Summary Current user
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.User
// @Router /users/me [get]
func (r *UsersRoute) getMe(reqCtx *gin.Context) {
	usr, _ := authhandler.GetUserFromContext(reqCtx)
	reqCtx.JSON(http.StatusOK, usr)
}

// updateMe godoc
// @Summary Update current user
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body userreq.UpdateMeRequest true "Changes"
// @Success 200 {object} user.User
// @Failure 409 {object} responses.ErrorResponse
// @Router /users/me [patch]
func (r *UsersRoute) updateMe(reqCtx *gin.Context) {
	usr, _ := authhandler.GetUserFromContext(reqCtx)
	var req userreq.UpdateMeRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "users-me-001")
		return
	}
	updated, err := r.handler.UpdateMe(reqCtx.Request.Context(), usr.ID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update user")
		return
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// updatePassword godoc
// @Summary Change own password
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body userreq.UpdatePasswordRequest true "Passwords"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /users/me/password [patch]
func (r *UsersRoute) updatePassword(reqCtx *gin.Context) {
	usr, _ := authhandler.GetUserFromContext(reqCtx)
	var req userreq.UpdatePasswordRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "users-password-001")
		return
	}
	if err := r.handler.UpdatePassword(reqCtx.Request.Context(), usr.ID, req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to update password")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("Password updated successfully"))
}

// getUser godoc
// @Summary Get user
// @Description Any user may read their own record. Other records need a superuser.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} user.User
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /users/{user_id} [get]
func (r *UsersRoute) getUser(reqCtx *gin.Context) {
	current, _ := authhandler.GetUserFromContext(reqCtx)
	id, err := requests.GetUUIDParam(reqCtx, "user_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid user id")
		return
	}
	if id == current.ID {
		reqCtx.JSON(http.StatusOK, current)
		return
	}
	if !current.IsSuperuser {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeForbidden, "the user doesn't have enough privileges", "users-get-001")
		return
	}
	found, err := r.handler.GetUser(reqCtx.Request.Context(), id)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get user")
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// updateUser godoc
// @Summary Update user
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body userreq.UpdateUserRequest true "Changes"
// @Success 200 {object} user.User
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /users/{user_id} [patch]
func (r *UsersRoute) updateUser(reqCtx *gin.Context) {
	id, err := requests.GetUUIDParam(reqCtx, "user_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid user id")
		return
	}
	var req userreq.UpdateUserRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "users-update-001")
		return
	}
	updated, err := r.handler.UpdateUser(reqCtx.Request.Context(), id, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update user")
		return
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// deleteUser godoc
// @Summary Delete user
// @Description Deletes the user and every item they own.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} responses.MessageResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /users/{user_id} [delete]
func (r *UsersRoute) deleteUser(reqCtx *gin.Context) {
	current, _ := authhandler.GetUserFromContext(reqCtx)
	id, err := requests.GetUUIDParam(reqCtx, "user_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid user id")
		return
	}
	if err := r.handler.DeleteUser(reqCtx.Request.Context(), current.ID, id); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete user")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("User deleted successfully"))
}
