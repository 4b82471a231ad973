package itemhandler

import (
	"context"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/item"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/itemreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
)

type ItemHandler struct {
	itemService *item.ItemService
}

func NewItemHandler(itemService *item.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) CreateItem(ctx context.Context, actor item.Actor, req itemreq.CreateItemRequest) (*item.Item, error) {
	return h.itemService.CreateItem(ctx, actor, item.ItemCreate{Title: req.Title, Description: req.Description})
}

func (h *ItemHandler) GetItem(ctx context.Context, actor item.Actor, id uuid.UUID) (*item.Item, error) {
	return h.itemService.GetItem(ctx, actor, id)
}

// ListItems returns every item for a superuser and the actor's own items otherwise.
func (h *ItemHandler) ListItems(ctx context.Context, actor item.Actor, pagination *query.Pagination) (*responses.PageResponse[*item.Item], error) {
	items, total, err := h.itemService.ListItems(ctx, actor, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(items, total, pagination)
	return &page, nil
}

func (h *ItemHandler) UpdateItem(ctx context.Context, actor item.Actor, id uuid.UUID, req itemreq.UpdateItemRequest) (*item.Item, error) {
	return h.itemService.UpdateItem(ctx, actor, id, item.ItemPatch{Title: req.Title, Description: req.Description})
}

func (h *ItemHandler) DeleteItem(ctx context.Context, actor item.Actor, id uuid.UUID) error {
	return h.itemService.DeleteItem(ctx, actor, id)
}
