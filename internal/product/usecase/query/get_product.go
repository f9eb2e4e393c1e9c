package query

import (
	"context"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.Repository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.Repository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, actor auth.Principal, query GetProductQuery) (*domain.Product, error) {
	if err := auth.Require(actor, auth.CapViewCatalog); err != nil {
		return nil, err
	}
	if query.ID == "" {
		return nil, apperror.Invalid("product_id", "is required")
	}
	return h.repo.FindByID(ctx, query.ID)
}
