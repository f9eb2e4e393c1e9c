package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Invalid("name", "required"), http.StatusBadRequest},
		{fmt.Errorf("login: %w", ErrAuthentication), http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("product Product_9: %w", ErrNotFound), http.StatusNotFound},
		{ErrDuplicateUsername, http.StatusConflict},
		{ErrRateLimited, http.StatusTooManyRequests},
		{&PhaseError{Phase: PhaseInsert, Err: ErrConnection}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err), "%v", c.err)
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("name", "required")
	v.Add("category", "required")

	err := v.OrNil()
	assert.EqualError(t, err, "validation failed: category: required; name: required")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPhaseErrorMessage(t *testing.T) {
	err := &PhaseError{Phase: PhaseDelete, Err: errors.New("timeout")}
	assert.EqualError(t, err, "replace failed during delete (rolled back): timeout")

	err.Committed = true
	assert.Contains(t, err.Error(), "partially applied")
}
