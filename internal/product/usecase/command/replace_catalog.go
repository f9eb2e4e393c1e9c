package command

import (
	"context"
	"fmt"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// ReplaceCatalogCommand pushes a full catalog over the stored one
type ReplaceCatalogCommand struct {
	Rows []domain.Product
}

// ReplaceCatalogHandler handles bulk catalog replacement
type ReplaceCatalogHandler struct {
	writer *CatalogWriter
}

// NewReplaceCatalogHandler creates a new replace catalog handler
func NewReplaceCatalogHandler(writer *CatalogWriter) *ReplaceCatalogHandler {
	return &ReplaceCatalogHandler{writer: writer}
}

// Handle validates every row and replaces the catalog. An empty set clears it.
func (h *ReplaceCatalogHandler) Handle(ctx context.Context, actor auth.Principal, cmd ReplaceCatalogCommand) ([]domain.Product, error) {
	if err := auth.Require(actor, auth.CapSyncCatalog); err != nil {
		return nil, err
	}
	if err := validateRows(cmd.Rows); err != nil {
		return nil, err
	}

	rows, err := h.writer.Replace(ctx, cmd.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to replace catalog: %w", err)
	}

	logger.Info(ctx).
		Int("rows", len(rows)).
		Str("actor", actor.Username).
		Msg("Catalog replaced")
	return rows, nil
}

func validateRows(rows []domain.Product) error {
	seen := make(map[string]int, len(rows))
	for i, r := range rows {
		if err := domain.ValidateRow(r); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if first, ok := seen[r.ID]; ok {
			return fmt.Errorf("row %d: %w", i+1,
				apperror.Invalid("product_id", fmt.Sprintf("%s duplicates row %d", r.ID, first)))
		}
		seen[r.ID] = i + 1
	}
	return nil
}
