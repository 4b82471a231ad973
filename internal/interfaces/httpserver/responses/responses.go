package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type ErrorResponse struct {
	Code          string `json:"code"`
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// MessageResponse is the body of endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessage(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// PageResponse wraps one page of a listing.
type PageResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

func NewPageResponse[T any](items []T, total int64, pagination *query.Pagination) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	size := pagination.PageSize()
	return PageResponse[T]{
		Data:  items,
		Total: total,
		Page:  pagination.PageNumber(),
		Size:  size,
		Pages: query.PageCount(total, size),
	}
}

// HandleError writes err as a JSON error. The status follows the PlatformError type, 500 otherwise.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		HandleErrorWithStatus(reqCtx, platformerrors.ErrorTypeToHTTPStatus(domainErr.Type), err, message)
		return
	}
	HandleErrorWithStatus(reqCtx, http.StatusInternalServerError, err, message)
}

// HandleErrorWithStatus is HandleError with an explicit status code.
func HandleErrorWithStatus(reqCtx *gin.Context, statusCode int, err error, message string) {
	errResp := ErrorResponse{
		Error:         message,
		ErrorInstance: err,
	}

	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		errResp.Code = domainErr.Code
		errResp.Message = domainErr.Message
		errResp.RequestID = domainErr.RequestID
	}
	if errResp.RequestID == "" {
		errResp.RequestID = platformerrors.RequestIDFromContext(reqCtx.Request.Context())
	}
	if err != nil {
		_ = reqCtx.Error(err)
	}
	reqCtx.AbortWithStatusJSON(statusCode, errResp)
}

// HandleNewError raises a route layer error and writes it.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, code string) {
	err := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, code)
	HandleErrorWithStatus(reqCtx, platformerrors.ErrorTypeToHTTPStatus(errorType), err, message)
}
