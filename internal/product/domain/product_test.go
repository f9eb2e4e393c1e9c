package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/retail-dashboard/pkg/apperror"
)

func ptr(v float64) *float64 { return &v }

func TestParseIDSuffix(t *testing.T) {
	n, ok := ParseIDSuffix("Product_42")
	require.True(t, ok)
	assert.EqualValues(t, 42, n)

	for _, bad := range []string{"42", "Product_", "Product_x", "product_3", "Product_-1"} {
		_, ok := ParseIDSuffix(bad)
		assert.False(t, ok, bad)
	}

	assert.Equal(t, "Product_7", FormatID(7))
	assert.EqualValues(t, 31, MaxIDSuffix([]Product{{ID: "Product_3"}, {ID: "custom"}, {ID: "Product_31"}}))
}

func TestValidate(t *testing.T) {
	valid := Draft{Name: "Lamp", Category: "Home & Garden", Price: 25, Rating: 4.1, SalesVolume: 10, Stock: 3, Discount: 5}
	require.NoError(t, Validate(valid))

	bad := valid
	bad.Name = "  "
	bad.Price = -1
	bad.Rating = 5.1
	bad.Discount = 7

	err := Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Contains(t, verr.Fields, "discount")

	assert.ErrorIs(t, ValidateRow(Product{Name: "x", Category: "y"}), apperror.ErrValidation)
}

func TestFilter(t *testing.T) {
	rows := []Product{
		{ID: "Product_1", Name: "Smart Phone", Category: "Electronics", Price: 300, Rating: 4.6},
		{ID: "Product_2", Name: "Phone Case", Category: "Electronics", Price: 15, Rating: 3.2},
		{ID: "Product_3", Name: "Novel", Category: "Books", Price: 12, Rating: 4.9},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter", Filter{}, []string{"Product_1", "Product_2", "Product_3"}},
		{"all category", Filter{Category: AllCategories}, []string{"Product_1", "Product_2", "Product_3"}},
		{"name case insensitive", Filter{Name: "PHONE"}, []string{"Product_1", "Product_2"}},
		{"category", Filter{Category: "Books"}, []string{"Product_3"}},
		{"price range", Filter{MinPrice: ptr(10), MaxPrice: ptr(20)}, []string{"Product_2", "Product_3"}},
		{"min rating", Filter{MinRating: ptr(4.5)}, []string{"Product_1", "Product_3"}},
		{"no match", Filter{Name: "tablet"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, p := range tt.filter.Apply(rows) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
