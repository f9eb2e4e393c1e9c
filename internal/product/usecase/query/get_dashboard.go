package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/auth"
)

// TopProductsLimit is the length of the best-seller table
const TopProductsLimit = 10

// CategoryRevenue is the revenue of one category
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// PriceSummary describes the price distribution, bounding the price filter
type PriceSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Dashboard aggregates the whole catalog
type Dashboard struct {
	Products          int               `json:"products"`
	TotalRevenue      float64           `json:"total_revenue"`
	AverageRating     float64           `json:"average_rating"`
	TotalSales        int               `json:"total_sales"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
	TopByRevenue      []domain.Product  `json:"top_by_revenue"`
	Price             PriceSummary      `json:"price"`
}

// GetDashboardHandler handles the dashboard query
type GetDashboardHandler struct {
	repo domain.Repository
}

// NewGetDashboardHandler creates a new dashboard handler
func NewGetDashboardHandler(repo domain.Repository) *GetDashboardHandler {
	return &GetDashboardHandler{repo: repo}
}

// Handle executes the dashboard query
func (h *GetDashboardHandler) Handle(ctx context.Context, actor auth.Principal) (*Dashboard, error) {
	if err := auth.Require(actor, auth.CapViewDashboard); err != nil {
		return nil, err
	}

	products, err := h.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return BuildDashboard(products), nil
}

// BuildDashboard computes the dashboard figures for rows
func BuildDashboard(rows []domain.Product) *Dashboard {
	d := &Dashboard{
		Products:          len(rows),
		RevenueByCategory: make([]CategoryRevenue, 0),
		TopByRevenue:      make([]domain.Product, 0),
	}
	if len(rows) == 0 {
		return d
	}

	var (
		revenue, rating []float64
		prices          stats.Float64Data
		byCategory      = make(map[string]float64)
	)
	for _, p := range rows {
		revenue = append(revenue, p.Revenue)
		rating = append(rating, p.Rating)
		prices = append(prices, p.Price)
		d.TotalSales += p.SalesVolume
		byCategory[p.Category] += p.Revenue
	}

	total, _ := stats.Sum(revenue)
	d.TotalRevenue = domain.Round2(total)
	avg, _ := stats.Mean(rating)
	d.AverageRating = domain.Round2(avg)

	d.Price.Min, _ = prices.Min()
	d.Price.Max, _ = prices.Max()
	median, _ := prices.Median()
	d.Price.Median = domain.Round2(median)

	for category, rev := range byCategory {
		d.RevenueByCategory = append(d.RevenueByCategory, CategoryRevenue{Category: category, Revenue: domain.Round2(rev)})
	}
	sort.Slice(d.RevenueByCategory, func(i, j int) bool {
		a, b := d.RevenueByCategory[i], d.RevenueByCategory[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Category < b.Category
	})

	top := make([]domain.Product, len(rows))
	copy(top, rows)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > TopProductsLimit {
		top = top[:TopProductsLimit]
	}
	d.TopByRevenue = top

	return d
}
