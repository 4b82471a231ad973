package projects

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/projecthandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/projectreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type ProjectRoute struct {
	handler     *projecthandler.ProjectHandler
	authHandler *authhandler.AuthHandler
}

func NewProjectRoute(handler *projecthandler.ProjectHandler, authHandler *authhandler.AuthHandler) *ProjectRoute {
	return &ProjectRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

// RegisterRouter registers project mapping routes
func (r *ProjectRoute) RegisterRouter(router gin.IRouter) {
	projects := router.Group("/projects")
	projects.GET("", r.authHandler.WithUserAuthChain(r.listProjects)...)
	projects.POST("", r.authHandler.WithUserAuthChain(r.createProject)...)
	projects.GET("/:project_id", r.authHandler.WithUserAuthChain(r.getProject)...)
	projects.PATCH("/:project_id", r.authHandler.WithUserAuthChain(r.updateProject)...)
	projects.DELETE("/:project_id", r.authHandler.WithUserAuthChain(r.deleteProject)...)
}

// listProjects godoc
// @Summary List project mappings
// @Tags Projects API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param eureka_name query string false "Exact eureka name"
// @Param upload_name query string false "Exact upload name"
// @Param q query string false "Search any name"
// @Success 200 {object} responses.PageResponse[projectmapping.ProjectMapping]
// @Router /projects [get]
func (r *ProjectRoute) listProjects(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	filter := projectmapping.ProjectMappingFilter{
		EurekaName: requests.GetOptionalStringQuery(reqCtx, "eureka_name"),
		UploadName: requests.GetOptionalStringQuery(reqCtx, "upload_name"),
		Search:     requests.GetOptionalStringQuery(reqCtx, "q"),
	}
	page, err := r.handler.ListProjects(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list project mappings")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// createProject godoc
// @Summary Create project mapping
// @Tags Projects API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body projectreq.CreateProjectRequest true "New mapping"
// @Success 201 {object} projectmapping.ProjectMapping
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /projects [post]
func (r *ProjectRoute) createProject(reqCtx *gin.Context) {
	var req projectreq.CreateProjectRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "projects-create-001")
		return
	}
	created, err := r.handler.CreateProject(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create project mapping")
		return
	}
	reqCtx.JSON(http.StatusCreated, created)
}

// getProject godoc
// @Summary Get project mapping
// @Tags Projects API
// @Security BearerAuth
// @Produce json
// @Param project_id path int true "Mapping ID"
// @Success 200 {object} projectmapping.ProjectMapping
// @Failure 404 {object} responses.ErrorResponse
// @Router /projects/{project_id} [get]
func (r *ProjectRoute) getProject(reqCtx *gin.Context) {
	id, err := requests.GetUintParam(reqCtx, "project_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid project id")
		return
	}
	found, err := r.handler.GetProject(reqCtx.Request.Context(), id)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get project mapping")
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// updateProject godoc
// @Summary Update project mapping
// @Description Changing a mapping drops it from the collector cache.
// @Tags Projects API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param project_id path int true "Mapping ID"
// @Param request body projectreq.UpdateProjectRequest true "Changes"
// @Success 200 {object} projectmapping.ProjectMapping
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /projects/{project_id} [patch]
func (r *ProjectRoute) updateProject(reqCtx *gin.Context) {
	id, err := requests.GetUintParam(reqCtx, "project_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid project id")
		return
	}
	var req projectreq.UpdateProjectRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "projects-update-001")
		return
	}
	updated, err := r.handler.UpdateProject(reqCtx.Request.Context(), id, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update project mapping")
		return
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// deleteProject godoc
// @Summary Delete project mapping
// @Tags Projects API
// @Security BearerAuth
// @Produce json
// @Param project_id path int true "Mapping ID"
// @Success 200 {object} responses.MessageResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /projects/{project_id} [delete]
func (r *ProjectRoute) deleteProject(reqCtx *gin.Context) {
	id, err := requests.GetUintParam(reqCtx, "project_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid project id")
		return
	}
	if err := r.handler.DeleteProject(reqCtx.Request.Context(), id); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete project mapping")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("Project mapping deleted successfully"))
}
