package query

import (
	"context"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// Refresher reloads a local catalog copy from the shared store
type Refresher interface {
	Refresh(ctx context.Context) ([]domain.Product, error)
}

// PullCatalogHandler discards the local catalog copy and reloads it
type PullCatalogHandler struct {
	mirror Refresher
}

// NewPullCatalogHandler creates a new pull handler
func NewPullCatalogHandler(mirror Refresher) *PullCatalogHandler {
	return &PullCatalogHandler{mirror: mirror}
}

// Handle reloads the catalog and returns it
func (h *PullCatalogHandler) Handle(ctx context.Context, actor auth.Principal) ([]domain.Product, error) {
	if err := auth.Require(actor, auth.CapSyncCatalog); err != nil {
		return nil, err
	}

	rows, err := h.mirror.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).Int("rows", len(rows)).Str("actor", actor.Username).Msg("Catalog pulled from store")
	return rows, nil
}
