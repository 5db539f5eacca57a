package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchaseOrderRouter(s *services) *gin.Engine {
	h := NewPurchaseOrderHandler(s.purchases)
	router := gin.New()
	router.POST("/purchase-orders", h.Create)
	router.GET("/purchase-orders", h.List)
	router.GET("/purchase-orders/:id", h.Get)
	router.POST("/purchase-orders/:id/confirm", h.Confirm)
	router.DELETE("/purchase-orders/:id", h.Delete)
	return router
}

func createPurchaseOrder(t *testing.T, router *gin.Engine, productID uuid.UUID, quantity int64) map[string]any {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/purchase-orders", map[string]any{
		"supplier": "Aqua Co",
		"items": []map[string]any{
			{"product_id": productID.String(), "quantity": quantity, "unit_price": "1.80"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeResponse(t, w)["data"].(map[string]any)
}

func TestPurchaseOrderHandler_Create(t *testing.T) {
	s := newServices()
	router := newPurchaseOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")

	order := createPurchaseOrder(t, router, product.ID, 10)

	assert.Equal(t, "Aqua Co", order["supplier"])
	assert.Equal(t, "PENDING", order["status"])
	assert.Equal(t, "18", order["total_amount"])
}

func TestPurchaseOrderHandler_Create_UnknownProduct(t *testing.T) {
	s := newServices()
	router := newPurchaseOrderRouter(s)

	w := doJSON(t, router, http.MethodPost, "/purchase-orders", map[string]any{
		"supplier": "Aqua Co",
		"items": []map[string]any{
			{"product_id": uuid.New().String(), "quantity": 10},
		},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, w))
}

func TestPurchaseOrderHandler_Confirm_AddsStock(t *testing.T) {
	s := newServices()
	router := newPurchaseOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	order := createPurchaseOrder(t, router, product.ID, 48)

	w := doJSON(t, router, http.MethodPost, "/purchase-orders/"+order["id"].(string)+"/confirm", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, "CONFIRMED", data["status"])

	balance, err := s.ledger.GetBalance(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(48)))
}

func TestPurchaseOrderHandler_List(t *testing.T) {
	s := newServices()
	router := newPurchaseOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	createPurchaseOrder(t, router, product.ID, 10)
	createPurchaseOrder(t, router, product.ID, 20)

	w := doJSON(t, router, http.MethodGet, "/purchase-orders", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp["data"].([]any), 2)
	assert.Equal(t, float64(2), resp["meta"].(map[string]any)["total"])
}

func TestPurchaseOrderHandler_Delete_Confirmed(t *testing.T) {
	s := newServices()
	router := newPurchaseOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	order := createPurchaseOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodPost, "/purchase-orders/"+order["id"].(string)+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/purchase-orders/"+order["id"].(string), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))
}
