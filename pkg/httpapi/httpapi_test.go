package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRespondErrorStatus(t *testing.T) {
	user := auth.Principal{Username: "ann", Role: auth.RoleUser}

	tests := []struct {
		name      string
		principal auth.Principal
		err       error
		want      int
	}{
		{"forbidden for user", user, fmt.Errorf("x: %w", apperror.ErrForbidden), http.StatusForbidden},
		{"forbidden for anonymous", auth.Principal{}, apperror.ErrForbidden, http.StatusUnauthorized},
		{"not found", user, apperror.ErrNotFound, http.StatusNotFound},
		{"connection", user, apperror.ErrConnection, http.StatusServiceUnavailable},
		{"unknown", user, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(WithPrincipal(req.Context(), tt.principal, "sid"))
			rec := httptest.NewRecorder()

			RespondError(rec, req, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.False(t, decode(t, rec).Success)
		})
	}
}

func TestRespondErrorCarriesValidationFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	RespondError(rec, req, apperror.Invalid("price", "must be a non-negative number"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"price": "must be a non-negative number"}, decode(t, rec).Fields)
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondError(rec, req, errors.New("pq: password authentication failed"))

	assert.Equal(t, "internal error", decode(t, rec).Error)
}

func TestMetricsWrapCountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")

	h := m.Wrap("/x", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var count float64
	for _, f := range families {
		if f.GetName() != "test_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "status" && l.GetValue() == "418" {
					count += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, 2.0, count)
}

func TestPrincipalDefaultsToAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, PrincipalFrom(req.Context()).Anonymous())
	assert.Empty(t, SessionIDFrom(req.Context()))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "given", seen)
}
