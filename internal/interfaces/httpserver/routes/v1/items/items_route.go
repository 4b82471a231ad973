package items

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/itemhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/itemreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type ItemsRoute struct {
	handler     *itemhandler.ItemHandler
	authHandler *authhandler.AuthHandler
}

func NewItemsRoute(handler *itemhandler.ItemHandler, authHandler *authhandler.AuthHandler) *ItemsRoute {
	return &ItemsRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (r *ItemsRoute) RegisterRouter(router gin.IRouter) {
	items := router.Group("/items")
	items.GET("", r.authHandler.WithUserAuthChain(r.listItems)...)
	items.POST("", r.authHandler.WithUserAuthChain(r.createItem)...)
	items.GET("/:item_id", r.authHandler.WithUserAuthChain(r.getItem)...)
	items.PUT("/:item_id", r.authHandler.WithUserAuthChain(r.updateItem)...)
	items.PATCH("/:item_id", r.authHandler.WithUserAuthChain(r.updateItem)...)
	items.DELETE("/:item_id", r.authHandler.WithUserAuthChain(r.deleteItem)...)
}

// listItems godoc
// @Summary List items
// @Description A superuser sees every item, other users only their own.
// @Tags Items API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} responses.PageResponse[item.Item]
// @Router /items [get]
func (r *ItemsRoute) listItems(reqCtx *gin.Context) {
	actor, _ := authhandler.ActorFromContext(reqCtx)
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	page, err := r.handler.ListItems(reqCtx.Request.Context(), actor, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list items")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// createItem godoc
// @Summary Create item
// @Tags Items API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body itemreq.CreateItemRequest true "New item"
// @Success 201 {object} item.Item
// @Failure 400 {object} responses.ErrorResponse
// @Router /items [post]
func (r *ItemsRoute) createItem(reqCtx *gin.Context) {
	actor, _ := authhandler.ActorFromContext(reqCtx)
	var req itemreq.CreateItemRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "items-create-001")
		return
	}
	created, err := r.handler.CreateItem(reqCtx.Request.Context(), actor, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create item")
		return
	}
	reqCtx.JSON(http.StatusCreated, created)
}

// getItem godoc
// @Summary Get item
// @Tags Items API
// @Security BearerAuth
// @Produce json
// @Param item_id path string true "Item ID"
// @Success 200 {object} item.Item
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /items/{item_id} [get]
func (r *ItemsRoute) getItem(reqCtx *gin.Context) {
	actor, _ := authhandler.ActorFromContext(reqCtx)
	id, err := requests.GetUUIDParam(reqCtx, "item_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid item id")
		return
	}
	found, err := r.handler.GetItem(reqCtx.Request.Context(), actor, id)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get item")
		return
	}
	reqCtx.JSON(http.StatusOK, found)
}

// updateItem godoc
// @Summary Update item
// @Tags Items API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item_id path string true "Item ID"
// @Param request body itemreq.UpdateItemRequest true "Changes"
// @Success 200 {object} item.Item
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /items/{item_id} [patch]
func (r *ItemsRoute) updateItem(reqCtx *gin.Context) {
	actor, _ := authhandler.ActorFromContext(reqCtx)
	id, err := requests.GetUUIDParam(reqCtx, "item_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid item id")
		return
	}
	var req itemreq.UpdateItemRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "items-update-001")
		return
	}
	updated, err := r.handler.UpdateItem(reqCtx.Request.Context(), actor, id, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update item")
		return
	}
	reqCtx.JSON(http.StatusOK, updated)
}

// deleteItem godoc
// @Summary Delete item
// @Tags Items API
// @Security BearerAuth
// @Produce json
// @Param item_id path string true "Item ID"
// @Success 200 {object} responses.MessageResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /items/{item_id} [delete]
func (r *ItemsRoute) deleteItem(reqCtx *gin.Context) {
	actor, _ := authhandler.ActorFromContext(reqCtx)
	id, err := requests.GetUUIDParam(reqCtx, "item_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid item id")
		return
	}
	if err := r.handler.DeleteItem(reqCtx.Request.Context(), actor, id); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete item")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("Item deleted successfully"))
}
