package ignores

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/ignorehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/ignorereq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type IgnoresRoute struct {
	handler     *ignorehandler.IgnoreHandler
	authHandler *authhandler.AuthHandler
}

func NewIgnoresRoute(handler *ignorehandler.IgnoreHandler, authHandler *authhandler.AuthHandler) *IgnoresRoute {
	return &IgnoresRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (r *IgnoresRoute) RegisterRouter(router gin.IRouter) {
	ignores := router.Group("/ignores")
	ignores.GET("", r.authHandler.WithUserAuthChain(r.listIgnores)...)
	ignores.POST("", r.authHandler.WithUserAuthChain(r.createIgnore)...)
	ignores.GET("/:ignore_id", r.authHandler.WithUserAuthChain(r.getIgnore)...)
	ignores.PATCH("/:ignore_id", r.authHandler.WithUserAuthChain(r.updateIgnore)...)
	ignores.DELETE("/:ignore_id", r.authHandler.WithUserAuthChain(r.deleteIgnore)...)
}

// listIgnores godoc
// @Summary List ignore rules
// @Tags Ignore API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param q query string false "Search uri or description"
// @Success 200 {object} responses.PageResponse[ignore.IgnoreInterface]
// @Router /ignores [get]
func (r *IgnoresRoute) listIgnores(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	filter := ignore.IgnoreFilter{Search: requests.GetOptionalStringQuery(reqCtx, "q")}
	page, err := r.handler.ListIgnores(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list ignore rules")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// createIgnore godoc
// @Summary Create ignore rule
// @Description A uri containing '*' is matched as a glob.
// @Tags Ignore API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ignorereq.CreateIgnoreRequest true "New rule"
// @Success 201 {object} ignore.IgnoreInterface
// @Failure 400 {object} responses.ErrorResponse
// @Router /ignores [post]
func (r *IgnoresRoute) createIgnore(reqCtx *gin.Context) {
	var req ignorereq.CreateIgnoreRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "ignores-create-001")
		return
	}
	created, err := r.handler.CreateIgnore(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create ignore rule")
		return
	}
	reqCtx.JSON(http.StatusCreated, created)
}

// getIgnore godoc
// @Summary Get ignore rule
// @Tags Ignore API
// @Security BearerAuth
// @Produce json
// @Param ignore_id path int true "Rule ID"
// @Success 200 {object} ignore.IgnoreInterface
// @Failure 404 {object} responses.ErrorResponse
// @Router /ignores/{ignore_id} [get]
func (r *IgnoresRoute) getIgnore(reqCtx *gin.Context) {
	id, err := requests.GetUintParam(reqCtx, "ignore_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid ignore rule id")
		return
	}
	found, err := r.handler.GetIgnore(reqCtx.Request.Context(), id)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get ignore rule")
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// updateIgnore godoc
// @Summary Update ignore rule
// @Tags Ignore API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param ignore_id path int true "Rule ID"
// @Param request body ignorereq.UpdateIgnoreRequest true "Changes"
// @Success 200 {object} ignore.IgnoreInterface
// @Failure 404 {object} responses.ErrorResponse
// @Router /ignores/{ignore_id} [patch]
func (r *IgnoresRoute) updateIgnore(reqCtx *gin.Context) {
	id, err := requests.GetUintParam(reqCtx, "ignore_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid ignore rule id")
		return
	}
	var req ignorereq.UpdateIgnoreRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "ignores-update-001")
		return
	}
	updated, err := r.handler.UpdateIgnore(reqCtx.Request.Context(), id, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update ignore rule")
		return
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// deleteIgnore godoc
// @Summary Delete ignore rule
// @Tags Ignore API
// @Security BearerAuth
// @Produce json
// @Param ignore_id path int true "Rule ID"
// @Success 200 {object} responses.MessageResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /ignores/{ignore_id} [delete]
func (r *IgnoresRoute) deleteIgnore(reqCtx *gin.Context) {
	id, err := requests.GetUintParam(reqCtx, "ignore_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid ignore rule id")
		return
	}
	if err := r.handler.DeleteIgnore(reqCtx.Request.Context(), id); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete ignore rule")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("Ignore rule deleted successfully"))
}
