package ignorehandler

import (
	"context"

	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/ignorereq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
)

type IgnoreHandler struct {
	ignoreService *ignore.IgnoreService
}

func NewIgnoreHandler(ignoreService *ignore.IgnoreService) *IgnoreHandler {
	return &IgnoreHandler{ignoreService: ignoreService}
}

func (h *IgnoreHandler) CreateIgnore(ctx context.Context, req ignorereq.CreateIgnoreRequest) (*ignore.IgnoreInterface, error) {
	return h.ignoreService.CreateIgnore(ctx, req.URI, req.Description)
}

func (h *IgnoreHandler) GetIgnore(ctx context.Context, id uint) (*ignore.IgnoreInterface, error) {
	return h.ignoreService.GetIgnore(ctx, id)
}

func (h *IgnoreHandler) ListIgnores(ctx context.Context, filter ignore.IgnoreFilter, pagination *query.Pagination) (*responses.PageResponse[*ignore.IgnoreInterface], error) {
	rules, total, err := h.ignoreService.ListIgnores(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(rules, total, pagination)
	return &page, nil
}

func (h *IgnoreHandler) UpdateIgnore(ctx context.Context, id uint, req ignorereq.UpdateIgnoreRequest) (*ignore.IgnoreInterface, error) {
	return h.ignoreService.UpdateIgnore(ctx, id, ignore.IgnorePatch{URI: req.URI, Description: req.Description})
}

func (h *IgnoreHandler) DeleteIgnore(ctx context.Context, id uint) error {
	return h.ignoreService.DeleteIgnore(ctx, id)
}
