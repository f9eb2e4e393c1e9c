package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/internal/product/domain"
)

type countingRepository struct {
	*MemoryProductRepository
	lists int
}

func (r *countingRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	r.lists++
	return r.MemoryProductRepository.ListAll(ctx)
}

func TestMirrorServesReadsUntilWrite(t *testing.T) {
	ctx := context.Background()
	backing := &countingRepository{MemoryProductRepository: NewMemoryProductRepository()}
	require.NoError(t, backing.Upsert(ctx, row("Product_1", "a")))
	mirror := NewMirrorProductRepository(backing)

	for i := 0; i < 3; i++ {
		rows, err := mirror.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	}
	_, err := mirror.FindByID(ctx, "Product_1")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.lists)

	require.NoError(t, mirror.Upsert(ctx, row("Product_2", "b")))
	rows, err := mirror.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Product_1", "Product_2"}, ids(rows))
	assert.Equal(t, 2, backing.lists)
}

func TestMirrorInvalidatePicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryProductRepository()
	mirror := NewMirrorProductRepository(backing)

	rows, err := mirror.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// another instance writes straight to the shared store
	require.NoError(t, backing.Upsert(ctx, row("Product_5", "remote")))

	rows, _ = mirror.ListAll(ctx)
	assert.Empty(t, rows)

	mirror.Invalidate()
	rows, _ = mirror.ListAll(ctx)
	assert.Equal(t, []string{"Product_5"}, ids(rows))
}

// pausingRepository blocks the first ListAll after it has read the rows
type pausingRepository struct {
	*MemoryProductRepository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *pausingRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.MemoryProductRepository.ListAll(ctx)
	r.once.Do(func() {
		close(r.loaded)
		<-r.release
	})
	return rows, err
}

func TestMirrorDropsLoadOverlappingWrite(t *testing.T) {
	ctx := context.Background()
	backing := &pausingRepository{
		MemoryProductRepository: NewMemoryProductRepository(),
		loaded:                  make(chan struct{}),
		release:                 make(chan struct{}),
	}
	stale := row("Product_1", "a")
	stale.Stock = 1
	require.NoError(t, backing.Upsert(ctx, stale))
	mirror := NewMirrorProductRepository(backing)

	done := make(chan []domain.Product)
	go func() {
		rows, _ := mirror.ListAll(ctx)
		done <- rows
	}()

	<-backing.loaded
	_, err := mirror.AdjustStock(ctx, "Product_1", 1)
	require.NoError(t, err)
	close(backing.release)

	rows := <-done
	assert.Equal(t, 1, rows[0].Stock, "the in-flight reader sees its own snapshot")

	p, err := mirror.FindByID(ctx, "Product_1")
	require.NoError(t, err)
	assert.Zero(t, p.Stock)
	assert.Equal(t, 1, p.SalesVolume)
}

func TestMirrorExposesSource(t *testing.T) {
	backing := NewMemoryProductRepository()
	mirror := NewMirrorProductRepository(NewTracingProductRepository(backing, "memory"))

	assert.Same(t, backing, domain.Authoritative(mirror).(*TracingProductRepository).next)
	assert.Same(t, backing, domain.Authoritative(backing))
}
