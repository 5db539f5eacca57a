package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/backend/internal/interfaces/http/dto"
)

type createPayload struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"gt=0"`
	OrderDir string `json:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func bindPayload(t *testing.T, body string) error {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload createPayload
	return c.ShouldBindJSON(&payload)
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	err := bindPayload(t, `{"quantity": 0}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	byField := map[string]string{}
	for _, d := range resp.Error.Details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", byField["name"])
	assert.Equal(t, "Must be greater than 0", byField["quantity"])
}

func TestFormatValidationErrors_OneOf(t *testing.T) {
	SetupValidator()

	err := bindPayload(t, `{"name": "x", "quantity": 1, "order_dir": "sideways"}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "order_dir", resp.Error.Details[0].Field)
	assert.Equal(t, "Must be one of: asc desc", resp.Error.Details[0].Message)
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	err := bindPayload(t, `{not json`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-2")
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}
