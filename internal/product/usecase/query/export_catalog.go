package query

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// ExportCatalogHandler writes the catalog as CSV
type ExportCatalogHandler struct {
	repo domain.Repository
}

// NewExportCatalogHandler creates a new export handler
func NewExportCatalogHandler(repo domain.Repository) *ExportCatalogHandler {
	return &ExportCatalogHandler{repo: repo}
}

// Handle writes a header row and one line per product to w
func (h *ExportCatalogHandler) Handle(ctx context.Context, actor auth.Principal, w io.Writer) (int, error) {
	if err := auth.Require(actor, auth.CapExportCatalog); err != nil {
		return 0, err
	}

	products, err := h.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := gocsv.Marshal(&products, w); err != nil {
		return 0, fmt.Errorf("failed to write csv: %w", err)
	}
	return len(products), nil
}
