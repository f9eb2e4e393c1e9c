package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevenue(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		sales    int
		discount int
		want     float64
	}{
		{"no discount", 100, 10, 0, 1000},
		{"ten percent", 100, 10, 10, 900},
		{"rounded", 19.99, 3, 15, 50.97},
		{"zero sales", 250, 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Revenue(tt.price, tt.sales, tt.discount))
		})
	}
}

func TestRecommendationScore(t *testing.T) {
	// 4.5*0.4 + (500/1000)*5*0.3 + (10/25)*5*0.3 = 1.8 + 0.75 + 0.6
	assert.Equal(t, 3.15, RecommendationScore(4.5, 500, 10, 1000))

	// top seller at the highest allowed discount
	assert.Equal(t, 4.7, RecommendationScore(5, 1000, 20, 1000))

	assert.Equal(t, 1.2, RecommendationScore(3, 0, 0, 0), "empty catalog has no sales term")
}

func TestRescoreUsesCatalogMaximum(t *testing.T) {
	rows := []Product{
		{ID: "Product_1", Price: 10, Rating: 4, SalesVolume: 200, Discount: 0},
		{ID: "Product_2", Price: 20, Rating: 4, SalesVolume: 400, Discount: 0},
	}

	max := Rescore(rows)

	assert.Equal(t, 400, max)
	assert.Equal(t, 2000.0, rows[0].Revenue)
	assert.Equal(t, 8000.0, rows[1].Revenue)
	assert.Equal(t, 2.35, rows[0].RecommendationScore)
	assert.Equal(t, 3.1, rows[1].RecommendationScore)
}

func TestUnitPrice(t *testing.T) {
	p := Product{Price: 99.99, Discount: 15}
	assert.Equal(t, 84.99, p.UnitPrice())
}
