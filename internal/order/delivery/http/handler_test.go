package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/order/repository"
	"github.com/tair/retail-dashboard/internal/order/usecase/command"
	"github.com/tair/retail-dashboard/internal/order/usecase/query"
	productdomain "github.com/tair/retail-dashboard/internal/product/domain"
	productrepo "github.com/tair/retail-dashboard/internal/product/repository"
	productcmd "github.com/tair/retail-dashboard/internal/product/usecase/command"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/httpapi"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	writer := productcmd.NewCatalogWriter(productrepo.NewMemoryProductRepository(), nil)
	_, err := writer.Replace(context.Background(), []productdomain.Product{
		{ID: "Product_1", Name: "Lamp", Category: "Home", Price: 50, Rating: 4, SalesVolume: 1, Stock: 4, Discount: 20},
	})
	require.NoError(t, err)

	ledger := repository.NewMemoryOrderRepository()
	h := NewOrderHandler(
		command.NewCheckoutHandler(productcmd.NewPurchaseProductHandler(writer), ledger, nil),
		query.NewListMyOrdersHandler(ledger),
		query.NewListOrdersHandler(ledger),
		httpapi.NewMetrics(prometheus.NewRegistry(), "test"),
	)

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role := r.Header.Get("X-Role"); role != "" {
				p := auth.Principal{Username: role + "-user", Role: role}
				r = r.WithContext(httpapi.WithPrincipal(r.Context(), p, "sid"))
			}
			next.ServeHTTP(w, r)
		})
	})
	h.RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, path, role, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if role != "" {
		req.Header.Set("X-Role", role)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutAndHistory(t *testing.T) {
	router := newRouter(t)

	rec := do(router, http.MethodPost, "/api/orders", auth.RoleUser, `{"items":[{"product_id":"Product_1","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var placed struct {
		Data struct {
			Count       int     `json:"count"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.Equal(t, 1, placed.Data.Count)
	assert.Equal(t, 80.0, placed.Data.TotalAmount)

	rec = do(router, http.MethodGet, "/api/orders/my", auth.RoleUser, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_name":"Lamp"`)

	rec = do(router, http.MethodGet, "/api/orders/my", auth.RoleAdmin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestOrderStatusCodes(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/api/orders", "", `{"items":[{"product_id":"Product_1","quantity":1}]}`).Code)
	assert.Equal(t, http.StatusConflict, do(router, http.MethodPost, "/api/orders", auth.RoleUser, `{"items":[{"product_id":"Product_1","quantity":5}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/orders", auth.RoleUser, `{"items":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/orders", auth.RoleUser, `not json`).Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/api/orders", auth.RoleUser, "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/orders", auth.RoleAdmin, "").Code)
}
