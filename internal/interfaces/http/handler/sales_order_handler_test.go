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

func newSalesOrderRouter(s *services) *gin.Engine {
	h := NewSalesOrderHandler(s.sales)
	router := gin.New()
	router.POST("/sales-orders", h.Create)
	router.GET("/sales-orders", h.List)
	router.GET("/sales-orders/:id", h.Get)
	router.POST("/sales-orders/:id/confirm", h.Confirm)
	router.DELETE("/sales-orders/:id", h.Delete)
	return router
}

func createSalesOrder(t *testing.T, router *gin.Engine, productID uuid.UUID, quantity int64) map[string]any {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/sales-orders", map[string]any{
		"customer_name": "Corner Shop",
		"items": []map[string]any{
			{"product_id": productID.String(), "quantity": quantity, "unit_price": "2.50"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeResponse(t, w)["data"].(map[string]any)
}

func TestSalesOrderHandler_Create(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")

	order := createSalesOrder(t, router, product.ID, 10)

	assert.Equal(t, "Corner Shop", order["customer_name"])
	assert.Equal(t, "PENDING", order["status"])
	assert.Equal(t, "25", order["total_amount"])
	items := order["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Spring Water 500ml", items[0].(map[string]any)["product_name"])
}

func TestSalesOrderHandler_Create_NoItems(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)

	w := doJSON(t, router, http.MethodPost, "/sales-orders", map[string]any{
		"customer_name": "Corner Shop",
		"items":         []map[string]any{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalesOrderHandler_Confirm(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	seedStock(t, s, product.ID, 100)
	order := createSalesOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodPost, "/sales-orders/"+order["id"].(string)+"/confirm", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, "CONFIRMED", data["status"])
	assert.NotEmpty(t, data["confirmed_at"])

	// stock was deducted
	balance, err := s.ledger.GetBalance(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(90)))
}

func TestSalesOrderHandler_Confirm_InsufficientStock(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	seedStock(t, s, product.ID, 5)
	order := createSalesOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodPost, "/sales-orders/"+order["id"].(string)+"/confirm", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, w))
}

func TestSalesOrderHandler_Confirm_AlreadyConfirmed(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	seedStock(t, s, product.ID, 100)
	order := createSalesOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodPost, "/sales-orders/"+order["id"].(string)+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/sales-orders/"+order["id"].(string)+"/confirm", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))
}

func TestSalesOrderHandler_GetAndList(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	order := createSalesOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodGet, "/sales-orders/"+order["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, order["order_number"], data["order_number"])

	w = doJSON(t, router, http.MethodGet, "/sales-orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp["data"].([]any), 1)
	assert.Equal(t, float64(1), resp["meta"].(map[string]any)["total"])
}

func TestSalesOrderHandler_Get_NotFound(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)

	w := doJSON(t, router, http.MethodGet, "/sales-orders/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestSalesOrderHandler_Delete(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	order := createSalesOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodDelete, "/sales-orders/"+order["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/sales-orders/"+order["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSalesOrderHandler_Delete_Confirmed(t *testing.T) {
	s := newServices()
	router := newSalesOrderRouter(s)
	product := seedProduct(t, s, "Spring Water 500ml")
	seedStock(t, s, product.ID, 100)
	order := createSalesOrder(t, router, product.ID, 10)

	w := doJSON(t, router, http.MethodPost, "/sales-orders/"+order["id"].(string)+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/sales-orders/"+order["id"].(string), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))
}
