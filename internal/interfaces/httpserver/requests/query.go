package requests

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

// GetPaginationFromQuery reads the 1-based page and size parameters.
func GetPaginationFromQuery(reqCtx *gin.Context) (*query.Pagination, error) {
	ctx := reqCtx.Request.Context()

	page, err := strconv.Atoi(reqCtx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid page number", err, "req-page-001")
	}
	size, err := strconv.Atoi(reqCtx.DefaultQuery("size", strconv.Itoa(query.DefaultPageSize)))
	if err != nil || size < 1 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid page size", err, "req-page-002")
	}
	return query.NewPagePagination(page, size), nil
}

// GetCursorPaginationFromQuery accepts an `after` id cursor with `limit` and `order`, and falls back to
// page/size when no cursor is given.
func GetCursorPaginationFromQuery(reqCtx *gin.Context) (*query.Pagination, error) {
	ctx := reqCtx.Request.Context()

	afterStr := reqCtx.Query("after")
	if afterStr == "" {
		return GetPaginationFromQuery(reqCtx)
	}

	parsedID, err := strconv.ParseUint(afterStr, 10, 64)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid pagination cursor", err, "req-cursor-001")
	}
	limit, err := strconv.Atoi(reqCtx.DefaultQuery("limit", strconv.Itoa(query.DefaultPageSize)))
	if err != nil || limit < 1 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid limit number", err, "req-cursor-002")
	}
	if limit > query.MaxPageSize {
		limit = query.MaxPageSize
	}
	order := strings.ToLower(reqCtx.DefaultQuery("order", "asc"))
	if order != "asc" && order != "desc" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid order", nil, "req-cursor-003")
	}

	after := uint(parsedID)
	return &query.Pagination{
		Limit: &limit,
		Order: order,
		After: &after,
	}, nil
}

// GetUUIDParam parses a path parameter as a uuid.
func GetUUIDParam(reqCtx *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(reqCtx.Param(name))
	if err != nil {
		return uuid.Nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid "+name, err, "req-param-001")
	}
	return id, nil
}

// GetUintParam parses a path parameter as a numeric id.
func GetUintParam(reqCtx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(reqCtx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid "+name, err, "req-param-002")
	}
	return uint(id), nil
}

// GetOptionalBoolQuery returns nil when the parameter is absent.
func GetOptionalBoolQuery(reqCtx *gin.Context, name string) (*bool, error) {
	raw, ok := reqCtx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid "+name, err, "req-query-001")
	}
	return &v, nil
}

// GetOptionalUintQuery returns nil when the parameter is absent.
func GetOptionalUintQuery(reqCtx *gin.Context, name string) (*uint, error) {
	raw, ok := reqCtx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid "+name, err, "req-query-002")
	}
	id := uint(v)
	return &id, nil
}

// GetOptionalStringQuery returns nil for an absent or blank parameter.
func GetOptionalStringQuery(reqCtx *gin.Context, name string) *string {
	raw := strings.TrimSpace(reqCtx.Query(name))
	if raw == "" {
		return nil
	}
	return &raw
}
