package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tair/retail-dashboard/pkg/apperror"
)

// IDPrefix is prepended to generated product identifiers
const IDPrefix = "Product_"

// AllowedDiscounts is the enumerated set of discount percentages
var AllowedDiscounts = []int{0, 5, 10, 15, 20}

// Product is one catalog row. Revenue and RecommendationScore are derived
// and always recomputed on write.
type Product struct {
	RowID               uint    `json:"-" bson:"-" gorm:"primaryKey;autoIncrement" csv:"-"`
	ID                  string  `json:"product_id" bson:"Product_ID" gorm:"column:product_id;uniqueIndex;not null" csv:"Product_ID"`
	Name                string  `json:"product_name" bson:"Product_Name" gorm:"column:product_name;not null" csv:"Product_Name"`
	Category            string  `json:"category" bson:"Category" gorm:"column:category;index" csv:"Category"`
	Price               float64 `json:"price" bson:"Price" gorm:"column:price;not null" csv:"Price"`
	Rating              float64 `json:"rating" bson:"Rating" gorm:"column:rating" csv:"Rating"`
	SalesVolume         int     `json:"sales_volume" bson:"Sales_Volume" gorm:"column:sales_volume" csv:"Sales_Volume"`
	Stock               int     `json:"stock" bson:"Stock" gorm:"column:stock" csv:"Stock"`
	Discount            int     `json:"discount" bson:"Discount" gorm:"column:discount" csv:"Discount"`
	Revenue             float64 `json:"revenue" bson:"Revenue" gorm:"column:revenue" csv:"Revenue"`
	RecommendationScore float64 `json:"recommendation_score" bson:"Recommendation_Score" gorm:"column:recommendation_score" csv:"Recommendation_Score"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Draft holds the editable fields of a product
type Draft struct {
	Name        string
	Category    string
	Price       float64
	Rating      float64
	SalesVolume int
	Stock       int
	Discount    int
}

// Draft extracts the editable fields of p
func (p Product) Draft() Draft {
	return Draft{
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		SalesVolume: p.SalesVolume,
		Stock:       p.Stock,
		Discount:    p.Discount,
	}
}

// Apply copies d into p, leaving ID and derived fields untouched
func (p *Product) Apply(d Draft) {
	p.Name = strings.TrimSpace(d.Name)
	p.Category = strings.TrimSpace(d.Category)
	p.Price = d.Price
	p.Rating = d.Rating
	p.SalesVolume = d.SalesVolume
	p.Stock = d.Stock
	p.Discount = d.Discount
}

// InStock reports whether at least qty units are available
func (p Product) InStock(qty int) bool {
	return p.Stock >= qty
}

// UnitPrice is the discounted price of a single unit
func (p Product) UnitPrice() float64 {
	return Round2(p.Price * (1 - float64(p.Discount)/100))
}

// FormatID builds the identifier for sequence number n
func FormatID(n int64) string {
	return IDPrefix + strconv.FormatInt(n, 10)
}

// ParseIDSuffix extracts n from "Product_<n>"
func ParseIDSuffix(id string) (int64, bool) {
	if !strings.HasPrefix(id, IDPrefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(id, IDPrefix), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MaxIDSuffix returns the largest numeric suffix among rows' identifiers
func MaxIDSuffix(rows []Product) int64 {
	var max int64
	for _, r := range rows {
		if n, ok := ParseIDSuffix(r.ID); ok && n > max {
			max = n
		}
	}
	return max
}

// Repository defines the contract for catalog persistence. Implementations
// never compute derived fields; callers hand them finished rows.
type Repository interface {
	// ListAll returns every row in insertion order
	ListAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	// ReplaceAll discards every row and stores rows, atomically where the
	// backend allows it and with an apperror.PhaseError otherwise
	ReplaceAll(ctx context.Context, rows []Product) error
	// Upsert inserts p or overwrites the row sharing its ID
	Upsert(ctx context.Context, p Product) error
	// UpdateDerived overwrites Revenue and RecommendationScore for the given IDs
	UpdateDerived(ctx context.Context, derived map[string]Derived) error
	// AdjustStock atomically moves qty units from Stock to SalesVolume and
	// returns the updated row. A negative qty moves units back; SalesVolume
	// never drops below zero. Fails with apperror.ErrConflict when Stock
	// holds fewer than qty units.
	AdjustStock(ctx context.Context, id string, qty int) (*Product, error)
	// Delete removes the row and reports whether one existed
	Delete(ctx context.Context, id string) (bool, error)
	// NextID atomically reserves a new identifier
	NextID(ctx context.Context) (string, error)
	// SyncSequence raises the identifier counter to at least n
	SyncSequence(ctx context.Context, n int64) error
}

// Sourced is implemented by read copies that sit in front of the
// authoritative repository
type Sourced interface {
	Source() Repository
}

// Authoritative returns the repository behind any read copy wrapping r
func Authoritative(r Repository) Repository {
	for {
		s, ok := r.(Sourced)
		if !ok {
			return r
		}
		r = s.Source()
	}
}

// InsufficientStockError is returned when a purchase exceeds Stock
func InsufficientStockError(id string, stock int) error {
	return fmt.Errorf("%w: only %d of %s in stock", apperror.ErrConflict, stock, id)
}

// NotFoundError is returned when a product id does not exist
func NotFoundError(id string) error {
	return fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
}
