package query

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/order/domain"
	"github.com/tair/retail-dashboard/internal/order/repository"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/auth"
)

func seededLedger(t *testing.T) *repository.MemoryOrderRepository {
	t.Helper()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryOrderRepository()
	require.NoError(t, repo.Append(context.Background(), []domain.Order{
		{ID: "a", Username: "ann", ProductID: "Product_1", Quantity: 2, UnitPrice: 9.99, Total: 19.98, CreatedAt: at},
		{ID: "b", Username: "bob", ProductID: "Product_2", Quantity: 1, UnitPrice: 5, Total: 5, CreatedAt: at},
		{ID: "c", Username: "ann", ProductID: "Product_3", Quantity: 1, UnitPrice: 0.1, Total: 0.1, CreatedAt: at},
	}))
	return repo
}

func TestListMyOrders(t *testing.T) {
	h := NewListMyOrdersHandler(seededLedger(t))

	ledger, err := h.Handle(context.Background(), auth.Principal{Username: "ann", Role: auth.RoleUser})
	require.NoError(t, err)

	ids := make([]string, 0, len(ledger.Orders))
	for _, o := range ledger.Orders {
		ids = append(ids, o.ID)
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, ledger.TotalQuantity)
	assert.Equal(t, 20.08, ledger.TotalAmount)

	_, err = h.Handle(context.Background(), auth.Principal{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestListOrdersRequiresAdmin(t *testing.T) {
	h := NewListOrdersHandler(seededLedger(t))

	_, err := h.Handle(context.Background(), auth.Principal{Username: "ann", Role: auth.RoleUser})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	ledger, err := h.Handle(context.Background(), auth.Principal{Username: "boss", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 3, ledger.Count)
	assert.Equal(t, 4, ledger.TotalQuantity)
	assert.Equal(t, 25.08, ledger.TotalAmount)
}

func TestBuildLedgerOfNothing(t *testing.T) {
	l := BuildLedger(nil)
	assert.NotNil(t, l.Orders)
	assert.Zero(t, l.Count)
	assert.Zero(t, l.TotalAmount)
}
