package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAsErrorKeepsInnerType(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "role not found", nil, "role-get-001")

	wrapped := AsError(ctx, LayerDomain, fmt.Errorf("lookup: %w", inner), "failed to get role")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeNotFound, wrapped.Type)
	assert.Equal(t, "role-get-001", wrapped.Code)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
}

func TestAsErrorDefaultsToInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerDomain, errors.New("boom"), "failed")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "nothing"))
}

func TestFromGormError(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ErrorTypeNotFound, FromGormError(ctx, gorm.ErrRecordNotFound, "missing", "").Type)
	assert.Equal(t, ErrorTypeConflict, FromGormError(ctx, gorm.ErrDuplicatedKey, "dup", "").Type)
	assert.Equal(t, ErrorTypeDatabase, FromGormError(ctx, errors.New("conn reset"), "db", "").Type)
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := map[ErrorType]int{
		ErrorTypeNotFound:     http.StatusNotFound,
		ErrorTypeValidation:   http.StatusBadRequest,
		ErrorTypeForbidden:    http.StatusForbidden,
		ErrorTypeUnauthorized: http.StatusUnauthorized,
		ErrorTypeConflict:     http.StatusConflict,
		ErrorTypeExternal:     http.StatusBadGateway,
		ErrorTypeDatabase:     http.StatusInternalServerError,
	}
	for errorType, status := range cases {
		assert.Equal(t, status, ErrorTypeToHTTPStatus(errorType), string(errorType))
	}
}
