package domain

import (
	"math"
	"strings"

	"github.com/tair/retail-dashboard/pkg/apperror"
)

// ValidDiscount reports whether d is one of AllowedDiscounts
func ValidDiscount(d int) bool {
	for _, allowed := range AllowedDiscounts {
		if d == allowed {
			return true
		}
	}
	return false
}

// Validate checks a draft before it reaches the store
func Validate(d Draft) error {
	v := apperror.NewValidationError()

	if strings.TrimSpace(d.Name) == "" {
		v.Add("product_name", "is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		v.Add("category", "is required")
	}
	if math.IsNaN(d.Price) || math.IsInf(d.Price, 0) || d.Price < 0 {
		v.Add("price", "must be a non-negative number")
	}
	if math.IsNaN(d.Rating) || d.Rating < 0 || d.Rating > 5 {
		v.Add("rating", "must be between 0.0 and 5.0")
	}
	if d.SalesVolume < 0 {
		v.Add("sales_volume", "cannot be negative")
	}
	if d.Stock < 0 {
		v.Add("stock", "cannot be negative")
	}
	if !ValidDiscount(d.Discount) {
		v.Add("discount", "must be one of 0, 5, 10, 15, 20")
	}

	return v.OrNil()
}

// ValidateRow checks a full row, including its identifier
func ValidateRow(p Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return apperror.Invalid("product_id", "is required")
	}
	return Validate(p.Draft())
}
