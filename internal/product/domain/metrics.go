package domain

import "math"

// Weights of the recommendation score
const (
	ratingWeight   = 0.4
	salesWeight    = 0.3
	discountWeight = 0.3
	// maxDiscountScale is the discount that earns the full discount term
	maxDiscountScale = 25.0
	scoreScale       = 5.0
)

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Revenue = round(Price * SalesVolume * (1 - Discount/100), 2)
func Revenue(price float64, salesVolume, discount int) float64 {
	return Round2(price * float64(salesVolume) * (1 - float64(discount)/100))
}

// RecommendationScore weighs rating, sales normalized against the catalog
// maximum, and discount. A zero maxSalesVolume contributes no sales term.
func RecommendationScore(rating float64, salesVolume, discount, maxSalesVolume int) float64 {
	salesTerm := 0.0
	if maxSalesVolume > 0 {
		salesTerm = float64(salesVolume) / float64(maxSalesVolume) * scoreScale * salesWeight
	}
	discountTerm := float64(discount) / maxDiscountScale * scoreScale * discountWeight
	return Round2(rating*ratingWeight + salesTerm + discountTerm)
}

// Derived holds the computed columns of a row
type Derived struct {
	Revenue             float64
	RecommendationScore float64
}

// Derived returns the computed columns of p
func (p Product) Derived() Derived {
	return Derived{Revenue: p.Revenue, RecommendationScore: p.RecommendationScore}
}

// ComputeDerived fills Revenue and RecommendationScore of p
func ComputeDerived(p *Product, maxSalesVolume int) {
	p.Revenue = Revenue(p.Price, p.SalesVolume, p.Discount)
	p.RecommendationScore = RecommendationScore(p.Rating, p.SalesVolume, p.Discount, maxSalesVolume)
}

// MaxSalesVolume returns the largest SalesVolume among rows
func MaxSalesVolume(rows []Product) int {
	max := 0
	for _, r := range rows {
		if r.SalesVolume > max {
			max = r.SalesVolume
		}
	}
	return max
}

// Rescore recomputes every row's derived fields against the rows' own
// maximum SalesVolume and returns that maximum.
func Rescore(rows []Product) int {
	max := MaxSalesVolume(rows)
	for i := range rows {
		ComputeDerived(&rows[i], max)
	}
	return max
}
