package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/retail-dashboard/internal/session/domain"
	"github.com/tair/retail-dashboard/internal/session/usecase"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/httpapi"
)

// SessionHandler handles login, logout and navigation requests
type SessionHandler struct {
	controller *usecase.Controller
	metrics    *httpapi.Metrics
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *usecase.Controller, metrics *httpapi.Metrics) *SessionHandler {
	return &SessionHandler{controller: controller, metrics: metrics}
}

// RegisterRoutes mounts the session routes
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics
	router.HandleFunc("/auth/login", m.Wrap("/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/auth/logout", m.Wrap("/auth/logout", h.Logout)).Methods("POST")
	router.HandleFunc("/api/session", m.Wrap("/api/session", h.GetSession)).Methods("GET")
	router.HandleFunc("/api/session/page", m.Wrap("/api/session/page", h.Navigate)).Methods("PUT")
}

// Login handles POST /auth/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.controller.Login(r.Context(), usecase.LoginCommand{
		Username:   req.Username,
		Password:   req.Password,
		RemoteAddr: remoteHost(r),
	})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "Logged in", result)
}

// Logout handles POST /auth/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Logout(r.Context(), httpapi.SessionIDFrom(r.Context())); err != nil {
		httpapi.RespondError(w, r, err)
		return
	}
	httpapi.RespondOK(w, http.StatusOK, "Logged out", nil)
}

type sessionView struct {
	State        string          `json:"state"`
	Session      *domain.Session `json:"session,omitempty"`
	Destinations []string        `json:"destinations"`
}

// GetSession handles GET /api/session. Anonymous callers get the
// anonymous state rather than an error.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	p := httpapi.PrincipalFrom(r.Context())
	view := sessionView{State: domain.StateAnonymous, Destinations: h.controller.Destinations(p)}

	if !p.Anonymous() {
		sess, err := h.controller.Current(r.Context(), httpapi.SessionIDFrom(r.Context()))
		if err != nil {
			httpapi.RespondError(w, r, err)
			return
		}
		view.Session = sess
		view.State = sess.State()
	}

	httpapi.RespondOK(w, http.StatusOK, "", view)
}

// Navigate handles PUT /api/session/page
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	if httpapi.PrincipalFrom(r.Context()).Anonymous() {
		httpapi.RespondError(w, r, apperror.ErrAuthentication)
		return
	}

	var req struct {
		Page string `json:"page"`
	}
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	sess, err := h.controller.Navigate(r.Context(), httpapi.SessionIDFrom(r.Context()), req.Page)
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "", sessionView{
		State:        sess.State(),
		Session:      sess,
		Destinations: domain.Destinations(sess.Role),
	})
}
