package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	writer *CatalogWriter
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(writer *CatalogWriter) *DeleteProductHandler {
	return &DeleteProductHandler{writer: writer}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, actor auth.Principal, cmd DeleteProductCommand) error {
	if err := auth.Require(actor, auth.CapManageCatalog); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ID) == "" {
		return apperror.Invalid("product_id", "is required")
	}

	if err := h.writer.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info(ctx).
		Str("product_id", cmd.ID).
		Str("actor", actor.Username).
		Msg("Product deleted")
	return nil
}
