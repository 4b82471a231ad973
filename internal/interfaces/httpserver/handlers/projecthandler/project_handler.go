package projecthandler

import (
	"context"
	"strings"

	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/projectreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
)

type ProjectHandler struct {
	mappingService *projectmapping.ProjectMappingService
}

func NewProjectHandler(mappingService *projectmapping.ProjectMappingService) *ProjectHandler {
	return &ProjectHandler{mappingService: mappingService}
}

func (h *ProjectHandler) CreateProject(ctx context.Context, req projectreq.CreateProjectRequest) (*projectmapping.ProjectMapping, error) {
	mapping := projectmapping.NewProjectMapping(
		strings.TrimSpace(req.EurekaName),
		strings.TrimSpace(req.UploadName),
		strings.TrimSpace(req.Name),
		req.Description,
	)
	return h.mappingService.CreateProjectMapping(ctx, mapping)
}

func (h *ProjectHandler) GetProject(ctx context.Context, id uint) (*projectmapping.ProjectMapping, error) {
	return h.mappingService.GetProjectMapping(ctx, id)
}

func (h *ProjectHandler) ListProjects(ctx context.Context, filter projectmapping.ProjectMappingFilter, pagination *query.Pagination) (*responses.PageResponse[*projectmapping.ProjectMapping], error) {
	mappings, total, err := h.mappingService.ListProjectMappings(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(mappings, total, pagination)
	return &page, nil
}

func (h *ProjectHandler) UpdateProject(ctx context.Context, id uint, req projectreq.UpdateProjectRequest) (*projectmapping.ProjectMapping, error) {
	return h.mappingService.UpdateProjectMapping(ctx, id, projectmapping.ProjectMappingPatch{
		UploadName:  req.UploadName,
		EurekaName:  req.EurekaName,
		Name:        req.Name,
		Description: req.Description,
	})
}

func (h *ProjectHandler) DeleteProject(ctx context.Context, id uint) error {
	return h.mappingService.DeleteProjectMapping(ctx, id)
}
