package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/retail-dashboard/internal/order/domain"
	"github.com/tair/retail-dashboard/internal/order/usecase/command"
	"github.com/tair/retail-dashboard/internal/order/usecase/query"
	"github.com/tair/retail-dashboard/pkg/httpapi"
)

// OrderHandler handles checkout and order history requests
type OrderHandler struct {
	checkoutHandler *command.CheckoutHandler
	myOrdersHandler *query.ListMyOrdersHandler
	ordersHandler   *query.ListOrdersHandler
	metrics         *httpapi.Metrics
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	checkoutHandler *command.CheckoutHandler,
	myOrdersHandler *query.ListMyOrdersHandler,
	ordersHandler *query.ListOrdersHandler,
	metrics *httpapi.Metrics,
) *OrderHandler {
	return &OrderHandler{
		checkoutHandler: checkoutHandler,
		myOrdersHandler: myOrdersHandler,
		ordersHandler:   ordersHandler,
		metrics:         metrics,
	}
}

// RegisterRoutes mounts the order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	m := h.metrics
	router.HandleFunc("/api/orders", m.Wrap("/api/orders", h.Checkout)).Methods("POST")
	router.HandleFunc("/api/orders/my", m.Wrap("/api/orders/my", h.MyOrders)).Methods("GET")
	router.HandleFunc("/api/orders", m.Wrap("/api/orders", h.ListOrders)).Methods("GET")
}

// Checkout handles POST /api/orders
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []domain.Item `json:"items"`
	}
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	orders, err := h.checkoutHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()),
		command.CheckoutCommand{Items: req.Items})
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}

	httpapi.RespondOK(w, http.StatusCreated, "Order placed", query.BuildLedger(orders))
}

// MyOrders handles GET /api/orders/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.myOrdersHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()))
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}
	httpapi.RespondOK(w, http.StatusOK, "", ledger)
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.ordersHandler.Handle(r.Context(), httpapi.PrincipalFrom(r.Context()))
	if err != nil {
		httpapi.RespondError(w, r, err)
		return
	}
	httpapi.RespondOK(w, http.StatusOK, "", ledger)
}
