package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Service:    config.ServiceConfig{Name: "catalog-test", InstanceID: "test"},
		HTTPPort:   "0",
		GRPCPort:   "0",
		Driver:     config.DriverMemory,
		JWT:        config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		Seed:       config.SeedConfig{Enabled: true, Rows: 30, Seed: 42},
		LoginLimit: config.LoginLimitConfig{MaxAttempts: 5, Window: time.Minute},
	}
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func (c client) login(username, password string) string {
	c.t.Helper()
	code, out := c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, code, out)
	return out["data"].(map[string]interface{})["token"].(string)
}

func TestServiceEndToEnd(t *testing.T) {
	ctx := context.Background()
	a, cleanup, err := Bootstrap(ctx, testConfig())
	require.NoError(t, err)
	defer cleanup()

	n, err := a.Seed(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = a.Seed(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = a.RegisterHandler.Handle(ctx, usercmd.RegisterUserCommand{
		Username: "boss", Password: "secret1", FullName: "Boss", Role: auth.RoleAdmin,
	})
	require.NoError(t, err)

	c := client{t: t, router: a.Router}

	code, _ := c.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "ann", "password": "secret1", "confirm_password": "secret1", "full_name": "Ann",
	})
	require.Equal(t, http.StatusCreated, code)

	userToken := c.login("ann", "secret1")
	adminToken := c.login("boss", "secret1")

	code, out := c.do(http.MethodGet, "/api/dashboard", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	dashboard := out["data"].(map[string]interface{})
	assert.Equal(t, 30.0, dashboard["products"])

	code, _ = c.do(http.MethodPost, "/api/products", userToken, map[string]interface{}{
		"product_name": "Kettle", "category": "Home", "price": 40, "rating": 4, "sales_volume": 5, "stock": 3, "discount": 5,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, out = c.do(http.MethodPost, "/api/products", adminToken, map[string]interface{}{
		"product_name": "Kettle", "category": "Home", "price": 40, "rating": 4, "sales_volume": 5, "stock": 3, "discount": 5,
	})
	require.Equal(t, http.StatusCreated, code, out)
	created := out["data"].(map[string]interface{})
	assert.Equal(t, "Product_31", created["product_id"])
	assert.Equal(t, 190.0, created["revenue"])

	code, out = c.do(http.MethodPost, "/api/orders", userToken, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": "Product_31", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, code, out)
	assert.Equal(t, 76.0, out["data"].(map[string]interface{})["total_amount"])

	code, out = c.do(http.MethodGet, "/api/products/Product_31", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, out["data"].(map[string]interface{})["stock"])

	code, _ = c.do(http.MethodGet, "/api/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/auth/logout", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodGet, "/api/orders/my", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOperationalEndpoints(t *testing.T) {
	a, cleanup, err := Bootstrap(context.Background(), testConfig())
	require.NoError(t, err)
	defer cleanup()

	c := client{t: t, router: a.Router}

	code, out := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["success"])

	c.do(http.MethodGet, "/api/session", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_requests_total")

	req = httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/orders")
}

func TestUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Driver = "cassandra"
	_, _, err := Bootstrap(context.Background(), cfg)
	assert.Error(t, err)
}

func TestBootstrapRefusesDefaultSecretInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.Service.Environment = "production"
	cfg.JWT.Secret = config.DefaultJWTSecret

	_, _, err := Bootstrap(context.Background(), cfg)
	assert.ErrorContains(t, err, "JWT_SECRET")
}
