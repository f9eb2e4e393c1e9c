package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/session/domain"
	"github.com/tair/retail-dashboard/internal/session/store"
	"github.com/tair/retail-dashboard/internal/session/usecase"
	userrepo "github.com/tair/retail-dashboard/internal/user/repository"
	usercmd "github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/httpapi"
	"github.com/tair/retail-dashboard/pkg/ratelimit"
)

type sessionBody struct {
	Success bool `json:"success"`
	Data    struct {
		Token        string   `json:"token"`
		State        string   `json:"state"`
		Destinations []string `json:"destinations"`
		Session      struct {
			Page string `json:"page"`
		} `json:"session"`
	} `json:"data"`
}

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	users := userrepo.NewMemoryUserRepository()
	_, err := usercmd.NewRegisterUserHandler(users).Handle(context.Background(),
		usercmd.RegisterUserCommand{Username: "ann", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)

	controller := usecase.NewController(
		usercmd.NewAuthenticateUserHandler(users),
		store.NewMemoryStore(),
		auth.NewTokenIssuer("secret", time.Hour),
		ratelimit.NewLimiter(nil, "login", 5, time.Minute),
	)

	router := mux.NewRouter()
	router.Use(SessionMiddleware(controller))
	NewSessionHandler(controller, httpapi.NewMetrics(prometheus.NewRegistry(), "test")).RegisterRoutes(router)
	return router
}

func call(t *testing.T, router http.Handler, method, path, token string, body interface{}) (int, sessionBody) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out sessionBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestSessionLifecycle(t *testing.T) {
	router := newRouter(t)

	code, out := call(t, router, http.MethodGet, "/api/session", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.StateAnonymous, out.Data.State)
	assert.Equal(t, []string{domain.PageLogin}, out.Data.Destinations)

	code, out = call(t, router, http.MethodPost, "/auth/login", "", map[string]string{"username": "ann", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	token := out.Data.Token
	require.NotEmpty(t, token)

	code, out = call(t, router, http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.StateUser, out.Data.State)
	assert.Equal(t, domain.PageDashboard, out.Data.Session.Page)

	code, _ = call(t, router, http.MethodPut, "/api/session/page", token, map[string]string{"page": domain.PageOrders})
	assert.Equal(t, http.StatusForbidden, code)

	code, out = call(t, router, http.MethodPut, "/api/session/page", token, map[string]string{"page": domain.PageCart})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.PageCart, out.Data.Session.Page)

	code, _ = call(t, router, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, out = call(t, router, http.MethodGet, "/api/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.StateAnonymous, out.Data.State)

	code, _ = call(t, router, http.MethodPut, "/api/session/page", token, map[string]string{"page": domain.PageCart})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newRouter(t)

	code, out := call(t, router, http.MethodPost, "/auth/login", "", map[string]string{"username": "ann", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, out.Success)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "bearer xyz")
	assert.Equal(t, "xyz", bearerToken(req))
}
