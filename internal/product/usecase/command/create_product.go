package command

import (
	"context"
	"fmt"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Product domain.Draft
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	writer *CatalogWriter
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(writer *CatalogWriter) *CreateProductHandler {
	return &CreateProductHandler{writer: writer}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, actor auth.Principal, cmd CreateProductCommand) (*domain.Product, error) {
	if err := auth.Require(actor, auth.CapManageCatalog); err != nil {
		return nil, err
	}
	if err := domain.Validate(cmd.Product); err != nil {
		return nil, err
	}

	product, err := h.writer.Insert(ctx, cmd.Product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info(ctx).
		Str("product_id", product.ID).
		Str("actor", actor.Username).
		Msg("Product created")
	return product, nil
}
