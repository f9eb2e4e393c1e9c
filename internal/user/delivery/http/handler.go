package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/retail-dashboard/internal/user/usecase/command"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/httpapi"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	metrics         *httpapi.Metrics
}

// NewUserHandler creates a new user handler
func NewUserHandler(registerHandler *command.RegisterUserHandler, metrics *httpapi.Metrics) *UserHandler {
	return &UserHandler{registerHandler: registerHandler, metrics: metrics}
}

// RegisterRoutes mounts the account routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.metrics.Wrap("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/me", h.metrics.Wrap("/auth/me", h.Me)).Methods("GET")
}

// Register handles POST /auth/register. Self-registration always creates a
// "user"; admins are created through the CLI.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		FullName        string `json:"full_name"`
	}
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
	})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusCreated, "Registered", user)
}

// Me handles GET /auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := httpapi.PrincipalFrom(r.Context())
	if p.Anonymous() {
		httpapi.RespondError(w, r, apperror.ErrAuthentication)
		return
	}

	httpapi.RespondOK(w, http.StatusOK, "", map[string]string{
		"username":  p.Username,
		"full_name": p.FullName,
		"role":      p.Role,
	})
}
