package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/backend/internal/domain/shared"
)

func TestBaseHandler_HandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"conflict", shared.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
		{"insufficient stock", shared.NewDomainError("INSUFFICIENT_STOCK", "not enough"), http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{"unexpected error", errors.New("driver: bad connection"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	var h BaseHandler
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestBaseHandler_ErrorCarriesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-789")

	var h BaseHandler
	h.NotFound(c, "gone")

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	errInfo := resp["error"].(map[string]any)
	assert.Equal(t, "req-789", errInfo["request_id"])
}
