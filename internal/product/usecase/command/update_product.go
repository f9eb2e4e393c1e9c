package command

import (
	"context"
	"fmt"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// UpdateProductCommand replaces every editable field of one product
type UpdateProductCommand struct {
	ID      string
	Product domain.Draft
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	writer *CatalogWriter
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(writer *CatalogWriter) *UpdateProductHandler {
	return &UpdateProductHandler{writer: writer}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, actor auth.Principal, cmd UpdateProductCommand) (*domain.Product, error) {
	if err := auth.Require(actor, auth.CapManageCatalog); err != nil {
		return nil, err
	}
	if err := domain.Validate(cmd.Product); err != nil {
		return nil, err
	}

	product, err := h.writer.Modify(ctx, cmd.ID, domain.ChangeUpsert, func(p *domain.Product) error {
		p.Apply(cmd.Product)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Info(ctx).
		Str("product_id", product.ID).
		Str("actor", actor.Username).
		Msg("Product updated")
	return product, nil
}
