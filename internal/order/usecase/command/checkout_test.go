package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/order/domain"
	"github.com/tair/retail-dashboard/internal/order/repository"
	productdomain "github.com/tair/retail-dashboard/internal/product/domain"
	productrepo "github.com/tair/retail-dashboard/internal/product/repository"
	productcmd "github.com/tair/retail-dashboard/internal/product/usecase/command"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

var customer = auth.Principal{Username: "ann", FullName: "Ann", Role: auth.RoleUser}

type recordingPublisher struct {
	mu     sync.Mutex
	placed []string
}

func (p *recordingPublisher) OrderPlaced(ctx context.Context, o domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placed = append(p.placed, o.ProductID)
	return nil
}

type failingLedger struct {
	domain.Repository
}

func (failingLedger) Append(ctx context.Context, orders []domain.Order) error {
	return errors.New("disk full")
}

type fixture struct {
	catalog   *productrepo.MemoryProductRepository
	purchase  *productcmd.PurchaseProductHandler
	ledger    *repository.MemoryOrderRepository
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := productrepo.NewMemoryProductRepository()
	writer := productcmd.NewCatalogWriter(catalog, nil)
	_, err := writer.Replace(context.Background(), []productdomain.Product{
		{ID: "Product_1", Name: "Lamp", Category: "Home", Price: 100, Rating: 4, SalesVolume: 10, Stock: 5, Discount: 10},
		{ID: "Product_2", Name: "Mug", Category: "Home", Price: 20, Rating: 3, SalesVolume: 40, Stock: 3, Discount: 0},
	})
	require.NoError(t, err)

	return &fixture{
		catalog:   catalog,
		purchase:  productcmd.NewPurchaseProductHandler(writer),
		ledger:    repository.NewMemoryOrderRepository(),
		publisher: &recordingPublisher{},
	}
}

func (f *fixture) product(t *testing.T, id string) *productdomain.Product {
	t.Helper()
	p, err := f.catalog.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func TestCheckoutRecordsOrdersAndMovesStock(t *testing.T) {
	f := newFixture(t)
	h := NewCheckoutHandler(f.purchase, f.ledger, f.publisher)

	orders, err := h.Handle(context.Background(), customer, CheckoutCommand{Items: []domain.Item{
		{ProductID: "Product_1", Quantity: 2},
		{ProductID: "Product_2", Quantity: 1},
		{ProductID: "Product_1", Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "Product_1", orders[0].ProductID)
	assert.Equal(t, "Lamp", orders[0].ProductName)
	assert.Equal(t, 3, orders[0].Quantity)
	assert.Equal(t, 90.0, orders[0].UnitPrice)
	assert.Equal(t, 270.0, orders[0].Total)
	assert.Equal(t, "ann", orders[0].Username)
	assert.NotEmpty(t, orders[0].ID)
	assert.Equal(t, 20.0, orders[1].Total)

	lamp := f.product(t, "Product_1")
	assert.Equal(t, 2, lamp.Stock)
	assert.Equal(t, 13, lamp.SalesVolume)
	assert.Equal(t, 2, f.product(t, "Product_2").Stock)

	stored, err := f.ledger.ListByUsername(context.Background(), "ann")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, []string{"Product_1", "Product_2"}, f.publisher.placed)
}

func TestCheckoutIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	h := NewCheckoutHandler(f.purchase, f.ledger, f.publisher)

	_, err := h.Handle(context.Background(), customer, CheckoutCommand{Items: []domain.Item{
		{ProductID: "Product_1", Quantity: 2},
		{ProductID: "Product_2", Quantity: 10},
	}})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	lamp := f.product(t, "Product_1")
	assert.Equal(t, 5, lamp.Stock)
	assert.Equal(t, 10, lamp.SalesVolume)

	all, _ := f.ledger.ListAll(context.Background())
	assert.Empty(t, all)
	assert.Empty(t, f.publisher.placed)
}

func TestCheckoutRestocksWhenLedgerFails(t *testing.T) {
	f := newFixture(t)
	h := NewCheckoutHandler(f.purchase, failingLedger{f.ledger}, nil)

	_, err := h.Handle(context.Background(), customer, CheckoutCommand{Items: []domain.Item{
		{ProductID: "Product_2", Quantity: 3},
	}})
	require.Error(t, err)

	mug := f.product(t, "Product_2")
	assert.Equal(t, 3, mug.Stock)
	assert.Equal(t, 40, mug.SalesVolume)
}

func TestCheckoutRejections(t *testing.T) {
	f := newFixture(t)
	h := NewCheckoutHandler(f.purchase, f.ledger, nil)
	ctx := context.Background()

	_, err := h.Handle(ctx, auth.Principal{}, CheckoutCommand{Items: []domain.Item{{ProductID: "Product_1", Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = h.Handle(ctx, customer, CheckoutCommand{})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = h.Handle(ctx, customer, CheckoutCommand{Items: []domain.Item{{ProductID: "Product_1", Quantity: 0}}})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].quantity")

	_, err = h.Handle(ctx, customer, CheckoutCommand{Items: []domain.Item{{ProductID: "Product_99", Quantity: 1}}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.Equal(t, 5, f.product(t, "Product_1").Stock)
}
