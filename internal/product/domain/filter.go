package domain

import "strings"

// AllCategories matches every category in a Filter
const AllCategories = "All"

// Filter narrows a catalog listing. Nil bounds are open.
type Filter struct {
	Name      string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

// Matches reports whether p passes every set criterion
func (f Filter) Matches(p Product) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	return true
}

// Apply returns the rows matching f, preserving order
func (f Filter) Apply(rows []Product) []Product {
	out := make([]Product, 0, len(rows))
	for _, p := range rows {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
