package command

import (
	"context"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// PurchaseProductCommand moves quantity units from stock to sales
type PurchaseProductCommand struct {
	ID       string
	Quantity int
	// Restock reverses an earlier purchase
	Restock bool
}

// PurchaseProductHandler handles stock movements caused by checkout
type PurchaseProductHandler struct {
	writer *CatalogWriter
}

// NewPurchaseProductHandler creates a new purchase handler
func NewPurchaseProductHandler(writer *CatalogWriter) *PurchaseProductHandler {
	return &PurchaseProductHandler{writer: writer}
}

// Handle decrements Stock and increments Sales_Volume, or the reverse when
// restocking. The stock check and the decrement are one store operation.
func (h *PurchaseProductHandler) Handle(ctx context.Context, actor auth.Principal, cmd PurchaseProductCommand) (*domain.Product, error) {
	if err := auth.Require(actor, auth.CapPurchase); err != nil {
		return nil, err
	}
	if cmd.Quantity <= 0 {
		return nil, apperror.Invalid("quantity", "must be greater than 0")
	}

	qty := cmd.Quantity
	if cmd.Restock {
		qty = -qty
	}
	return h.writer.Purchase(ctx, cmd.ID, qty)
}
