package command

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// SeedCategories are the categories of the generated sample catalog
var SeedCategories = []string{"Electronics", "Clothing", "Food", "Home & Garden", "Sports", "Books", "Toys"}

// SeedCatalogCommand asks for a deterministic sample catalog
type SeedCatalogCommand struct {
	Rows int
	Seed int64
	// Force replaces a non-empty catalog
	Force bool
}

// SeedCatalogHandler fills an empty catalog with sample rows
type SeedCatalogHandler struct {
	writer *CatalogWriter
}

// NewSeedCatalogHandler creates a new seed catalog handler
func NewSeedCatalogHandler(writer *CatalogWriter) *SeedCatalogHandler {
	return &SeedCatalogHandler{writer: writer}
}

// Handle seeds the catalog and returns the number of rows written
func (h *SeedCatalogHandler) Handle(ctx context.Context, actor auth.Principal, cmd SeedCatalogCommand) (int, error) {
	if err := auth.Require(actor, auth.CapSyncCatalog); err != nil {
		return 0, err
	}

	sample := SampleCatalog(cmd.Rows, cmd.Seed)

	var rows []domain.Product
	var err error
	if cmd.Force {
		rows, err = h.writer.Replace(ctx, sample)
	} else {
		var seeded bool
		rows, seeded, err = h.writer.ReplaceIfEmpty(ctx, sample)
		if err == nil && !seeded {
			logger.Info(ctx).Msg("Catalog already populated, skipping seed")
			return 0, nil
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Info(ctx).Int("rows", len(rows)).Int64("seed", cmd.Seed).Msg("Catalog seeded")
	return len(rows), nil
}

// SampleCatalog generates n rows from seed. Equal inputs give equal rows;
// derived fields are left for the writer.
func SampleCatalog(n int, seed int64) []domain.Product {
	r := rand.New(rand.NewSource(seed))
	pick := func() string { return SeedCategories[r.Intn(len(SeedCategories))] }

	rows := make([]domain.Product, n)
	for i := range rows {
		num := i + 1
		rows[i] = domain.Product{
			ID:          domain.FormatID(int64(num)),
			Name:        fmt.Sprintf("%s Item %d", pick(), num),
			Category:    pick(),
			Price:       domain.Round2(10 + r.Float64()*490),
			Rating:      math.Round((3+r.Float64()*2)*10) / 10,
			SalesVolume: 10 + r.Intn(990),
			Stock:       r.Intn(200),
			Discount:    domain.AllowedDiscounts[r.Intn(len(domain.AllowedDiscounts))],
		}
	}
	return rows
}
