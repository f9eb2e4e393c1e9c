package command

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// ImportCatalogCommand replaces the catalog with rows read from CSV. Derived
// columns in the input are ignored and recomputed.
type ImportCatalogCommand struct {
	CSV io.Reader
}

// ImportCatalogHandler handles CSV catalog import
type ImportCatalogHandler struct {
	replace *ReplaceCatalogHandler
}

// NewImportCatalogHandler creates a new import catalog handler
func NewImportCatalogHandler(replace *ReplaceCatalogHandler) *ImportCatalogHandler {
	return &ImportCatalogHandler{replace: replace}
}

// Handle executes the import catalog command
func (h *ImportCatalogHandler) Handle(ctx context.Context, actor auth.Principal, cmd ImportCatalogCommand) ([]domain.Product, error) {
	if err := auth.Require(actor, auth.CapSyncCatalog); err != nil {
		return nil, err
	}

	var rows []domain.Product
	if err := gocsv.Unmarshal(cmd.CSV, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	return h.replace.Handle(ctx, actor, ReplaceCatalogCommand{Rows: rows})
}
