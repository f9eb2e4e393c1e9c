package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// Response is the envelope of every JSON reply
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondOK sends a successful envelope
func RespondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError maps err onto a status code and sends a failure envelope.
// Forbidden for an anonymous caller becomes 401.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusForbidden && PrincipalFrom(r.Context()).Anonymous() {
		status = http.StatusUnauthorized
	}

	resp := Response{Success: false, Error: err.Error()}
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		if status == http.StatusInternalServerError {
			resp.Error = "internal error"
		}
	}

	RespondJSON(w, status, resp)
}

// BadRequest sends a 400 with message
func BadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   message,
	})
}

// DecodeJSON reads the request body into v
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
