package persistence

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"gorm.io/gorm"
)

// GormProductAnalyticsRepository implements analytics.ProductSource over
// the products table
type GormProductAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormProductAnalyticsRepository creates a new GormProductAnalyticsRepository
func NewGormProductAnalyticsRepository(db *gorm.DB) *GormProductAnalyticsRepository {
	return &GormProductAnalyticsRepository{db: db}
}

// TotalsByCategory counts products and sums price*stock per category.
// Missing price or stock contributes zero.
func (r *GormProductAnalyticsRepository) TotalsByCategory(ctx context.Context, q analytics.ProductQuery) ([]analytics.GroupTotal, error) {
	db := r.db.WithContext(ctx).Table("products")
	if len(q.Categories) > 0 {
		db = db.Where("category IN ?", q.Categories)
	}

	var groups []analytics.GroupTotal
	err := db.
		Select(`
			COALESCE(category, '') AS key,
			COUNT(*) AS count,
			COALESCE(SUM(COALESCE(price, 0) * COALESCE(stock, 0)), 0) AS total
		`).
		Group("category").
		Scan(&groups).Error
	return groups, err
}

// LowStock lists up to limit products with stock below threshold,
// lowest stock first
func (r *GormProductAnalyticsRepository) LowStock(ctx context.Context, threshold, limit int) ([]analytics.LowStockProduct, error) {
	var products []analytics.LowStockProduct
	err := r.db.WithContext(ctx).Table("products").
		Select("id AS product_id, name, COALESCE(stock, 0) AS stock").
		Where("COALESCE(stock, 0) < ?", threshold).
		Order("stock ASC").
		Limit(limit).
		Scan(&products).Error
	return products, err
}

var _ analytics.ProductSource = (*GormProductAnalyticsRepository)(nil)
