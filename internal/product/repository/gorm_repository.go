package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/database"
)

const productSequence = "product_id"

// sequence is a named monotonic counter row
type sequence struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

func (sequence) TableName() string {
	return "sequences"
}

// GormProductRepository stores the catalog in PostgreSQL through GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM backed catalog repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate creates the products and sequences tables
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &sequence{})
}

func (r *GormProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Order("row_id").Find(&products).Error; err != nil {
		return nil, database.MapGormError(err)
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError(id)
	}
	if err != nil {
		return nil, database.MapGormError(err)
	}
	return &product, nil
}

func (r *GormProductRepository) ReplaceAll(ctx context.Context, rows []domain.Product) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return &apperror.PhaseError{Phase: apperror.PhaseDelete, Err: database.MapGormError(tx.Error)}
	}

	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Product{}).Error; err != nil {
		tx.Rollback()
		return &apperror.PhaseError{Phase: apperror.PhaseDelete, Err: database.MapGormError(err)}
	}

	if len(rows) > 0 {
		fresh := make([]domain.Product, len(rows))
		for i, p := range rows {
			p.RowID = 0
			fresh[i] = p
		}
		if err := tx.CreateInBatches(fresh, 100).Error; err != nil {
			tx.Rollback()
			return &apperror.PhaseError{Phase: apperror.PhaseInsert, Err: database.MapGormError(err)}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return &apperror.PhaseError{Phase: apperror.PhaseCommit, Err: database.MapGormError(err)}
	}
	return nil
}

func (r *GormProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	p.RowID = 0
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_name", "category", "price", "rating", "sales_volume",
			"stock", "discount", "revenue", "recommendation_score",
		}),
	}).Create(&p).Error
	return database.MapGormError(err)
}

func (r *GormProductRepository) UpdateDerived(ctx context.Context, derived map[string]domain.Derived) error {
	if len(derived) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, d := range derived {
			if err := tx.Model(&domain.Product{}).
				Where("product_id = ?", id).
				Updates(map[string]interface{}{
					"revenue":              d.Revenue,
					"recommendation_score": d.RecommendationScore,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return database.MapGormError(err)
}

func (r *GormProductRepository) AdjustStock(ctx context.Context, id string, qty int) (*domain.Product, error) {
	var product domain.Product
	res := r.db.WithContext(ctx).
		Model(&product).
		Clauses(clause.Returning{}).
		Where("product_id = ? AND stock >= ?", id, qty).
		Updates(map[string]interface{}{
			"stock":        gorm.Expr("stock - ?", qty),
			"sales_volume": gorm.Expr("GREATEST(sales_volume + ?, 0)", qty),
		})
	if res.Error != nil {
		return nil, database.MapGormError(res.Error)
	}
	if res.RowsAffected > 0 {
		return &product, nil
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, domain.InsufficientStockError(id, current.Stock)
}

func (r *GormProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return false, database.MapGormError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormProductRepository) NextID(ctx context.Context) (string, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`, productSequence,
	).Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("failed to reserve product id: %w", database.MapGormError(err))
	}
	return domain.FormatID(value), nil
}

func (r *GormProductRepository) SyncSequence(ctx context.Context, n int64) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO sequences (name, value) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET value = GREATEST(sequences.value, EXCLUDED.value)`,
		productSequence, n,
	).Error
	return database.MapGormError(err)
}
