package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/stocktrack/backend/internal/application/catalog"
	inventoryapp "github.com/stocktrack/backend/internal/application/inventory"
	tradeapp "github.com/stocktrack/backend/internal/application/trade"
	"github.com/stocktrack/backend/internal/interfaces/http/middleware"
	"github.com/stocktrack/backend/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// services wires the application layer over in-memory repositories for
// handler tests.
type services struct {
	repos     *testutil.MemoryRepos
	products  *catalogapp.ProductService
	units     *catalogapp.PackageUnitService
	ledger    *inventoryapp.LedgerService
	takings   *inventoryapp.StockTakingService
	purchases *tradeapp.PurchaseOrderService
	sales     *tradeapp.SalesOrderService
	returns   *tradeapp.ReturnOrderService
}

func newServices() *services {
	repos := testutil.NewMemoryRepos()
	scope := repos.Scope()
	ledger := inventoryapp.NewLedgerService(scope, repos.Products, repos.Units, repos.Records, repos.Transactions)

	return &services{
		repos:     repos,
		products:  catalogapp.NewProductService(repos.Products, repos.Units, repos.Records),
		units:     catalogapp.NewPackageUnitService(repos.Products, repos.Units),
		ledger:    ledger,
		takings:   inventoryapp.NewStockTakingService(scope, repos.StockTakings, ledger),
		purchases: tradeapp.NewPurchaseOrderService(scope, repos.PurchaseOrders, repos.ReturnOrders, ledger),
		sales:     tradeapp.NewSalesOrderService(scope, repos.SalesOrders, repos.ReturnOrders, ledger),
		returns:   tradeapp.NewReturnOrderService(scope, repos.ReturnOrders, repos.PurchaseOrders, repos.SalesOrders, ledger),
	}
}

// doJSON performs a request with a JSON body against the router
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals the standard response envelope
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decodeResponse(t, w)
	errInfo, ok := resp["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := errInfo["code"].(string)
	return code
}

// seedProduct creates a product through the service layer
func seedProduct(t *testing.T, s *services, name string) *catalogapp.ProductResponse {
	t.Helper()

	product, err := s.products.Create(context.Background(), catalogapp.CreateProductRequest{
		Name:     name,
		BaseUnit: "bottle",
	})
	require.NoError(t, err)
	return product
}
