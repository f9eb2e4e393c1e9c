package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/retail-dashboard/internal/order/domain"
	productdomain "github.com/tair/retail-dashboard/internal/product/domain"
	productcmd "github.com/tair/retail-dashboard/internal/product/usecase/command"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// CheckoutCommand represents the command to buy the contents of a cart
type CheckoutCommand struct {
	Items []domain.Item
}

// CheckoutHandler handles checkout command
type CheckoutHandler struct {
	purchase  *productcmd.PurchaseProductHandler
	repo      domain.Repository
	publisher domain.EventPublisher
	now       func() time.Time
}

// NewCheckoutHandler creates a new checkout handler. publisher may be nil.
func NewCheckoutHandler(purchase *productcmd.PurchaseProductHandler, repo domain.Repository, publisher domain.EventPublisher) *CheckoutHandler {
	return &CheckoutHandler{
		purchase:  purchase,
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Handle moves every item from stock to sales and records one order per
// item. Either all items are bought or none are.
func (h *CheckoutHandler) Handle(ctx context.Context, actor auth.Principal, cmd CheckoutCommand) ([]domain.Order, error) {
	if err := auth.Require(actor, auth.CapPurchase); err != nil {
		return nil, err
	}

	items, err := mergeItems(cmd.Items)
	if err != nil {
		return nil, err
	}

	createdAt := h.now().UTC()
	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		p, err := h.purchase.Handle(ctx, actor, productcmd.PurchaseProductCommand{
			ID:       item.ProductID,
			Quantity: item.Quantity,
		})
		if err != nil {
			h.restock(ctx, actor, orders)
			return nil, err
		}

		unit := p.UnitPrice()
		orders = append(orders, domain.Order{
			ID:          uuid.NewString(),
			Username:    actor.Username,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			Total:       productdomain.Round2(unit * float64(item.Quantity)),
			CreatedAt:   createdAt,
		})
	}

	if err := h.repo.Append(ctx, orders); err != nil {
		h.restock(ctx, actor, orders)
		return nil, fmt.Errorf("failed to record orders: %w", err)
	}

	var total float64
	for _, o := range orders {
		total += o.Total
		if h.publisher == nil {
			continue
		}
		if err := h.publisher.OrderPlaced(ctx, o); err != nil {
			logger.Warn(ctx).Err(err).Str("order_id", o.ID).Msg("Failed to publish order event")
		}
	}

	logger.Info(ctx).
		Str("username", actor.Username).
		Int("items", len(orders)).
		Float64("total", productdomain.Round2(total)).
		Msg("Checkout completed")
	return orders, nil
}

// restock gives back the stock taken for orders
func (h *CheckoutHandler) restock(ctx context.Context, actor auth.Principal, orders []domain.Order) {
	for _, o := range orders {
		if _, err := h.purchase.Handle(ctx, actor, productcmd.PurchaseProductCommand{
			ID:       o.ProductID,
			Quantity: o.Quantity,
			Restock:  true,
		}); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("product_id", o.ProductID).
				Int("quantity", o.Quantity).
				Msg("Failed to restock after aborted checkout")
		}
	}
}

// mergeItems validates the cart and folds repeated products into one line,
// keeping first-seen order
func mergeItems(items []domain.Item) ([]domain.Item, error) {
	v := apperror.NewValidationError()
	if len(items) == 0 {
		v.Add("items", "cart is empty")
		return nil, v
	}

	index := make(map[string]int, len(items))
	merged := make([]domain.Item, 0, len(items))
	for i, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" {
			v.Add(fmt.Sprintf("items[%d].product_id", i), "is required")
			continue
		}
		if item.Quantity <= 0 {
			v.Add(fmt.Sprintf("items[%d].quantity", i), "must be greater than 0")
			continue
		}
		if j, ok := index[id]; ok {
			merged[j].Quantity += item.Quantity
			continue
		}
		index[id] = len(merged)
		merged = append(merged, domain.Item{ProductID: id, Quantity: item.Quantity})
	}

	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return merged, nil
}
