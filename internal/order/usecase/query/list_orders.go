package query

import (
	"context"

	"github.com/tair/retail-dashboard/internal/order/domain"
	productdomain "github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// ListMyOrdersHandler handles the signed-in user's order history
type ListMyOrdersHandler struct {
	repo domain.Repository
}

// NewListMyOrdersHandler creates a new handler
func NewListMyOrdersHandler(repo domain.Repository) *ListMyOrdersHandler {
	return &ListMyOrdersHandler{repo: repo}
}

// Handle returns the actor's own orders
func (h *ListMyOrdersHandler) Handle(ctx context.Context, actor auth.Principal) (*domain.Ledger, error) {
	if err := auth.Require(actor, auth.CapPurchase); err != nil {
		return nil, err
	}
	orders, err := h.repo.ListByUsername(ctx, actor.Username)
	if err != nil {
		return nil, err
	}
	return BuildLedger(orders), nil
}

// ListOrdersHandler handles the admin view of every order
type ListOrdersHandler struct {
	repo domain.Repository
}

// NewListOrdersHandler creates a new handler
func NewListOrdersHandler(repo domain.Repository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle returns all orders with totals
func (h *ListOrdersHandler) Handle(ctx context.Context, actor auth.Principal) (*domain.Ledger, error) {
	if err := auth.Require(actor, auth.CapViewAllOrders); err != nil {
		return nil, err
	}
	orders, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLedger(orders), nil
}

// BuildLedger sums quantities and amounts over orders
func BuildLedger(orders []domain.Order) *domain.Ledger {
	l := &domain.Ledger{Orders: orders, Count: len(orders)}
	if l.Orders == nil {
		l.Orders = []domain.Order{}
	}
	for _, o := range orders {
		l.TotalQuantity += o.Quantity
		l.TotalAmount += o.Total
	}
	l.TotalAmount = productdomain.Round2(l.TotalAmount)
	return l
}
