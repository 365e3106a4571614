package persistence

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"gorm.io/gorm"
)

// GormPaymentAnalyticsRepository implements analytics.PaymentSource over
// the payments table
type GormPaymentAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormPaymentAnalyticsRepository creates a new GormPaymentAnalyticsRepository
func NewGormPaymentAnalyticsRepository(db *gorm.DB) *GormPaymentAnalyticsRepository {
	return &GormPaymentAnalyticsRepository{db: db}
}

func (r *GormPaymentAnalyticsRepository) scoped(ctx context.Context, q analytics.PaymentQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Table("payments")
	if q.Kind != "" {
		db = db.Where("type = ?", q.Kind)
	}
	if q.Range.Start != nil {
		db = db.Where("created_at >= ?", *q.Range.Start)
	}
	if q.Range.End != nil {
		db = db.Where("created_at <= ?", *q.Range.End)
	}
	return db
}

// TotalsByPeriod sums payment amounts per (year, month)
func (r *GormPaymentAnalyticsRepository) TotalsByPeriod(ctx context.Context, q analytics.PaymentQuery) ([]analytics.PeriodBucket, error) {
	var buckets []analytics.PeriodBucket
	err := r.scoped(ctx, q).
		Select(`
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*) AS count,
			COALESCE(SUM(amount), 0) AS total
		`).
		Group("1, 2").
		Order("1, 2").
		Scan(&buckets).Error
	return buckets, err
}

// TotalsByCategory sums payment amounts per category
func (r *GormPaymentAnalyticsRepository) TotalsByCategory(ctx context.Context, q analytics.PaymentQuery) ([]analytics.GroupTotal, error) {
	var groups []analytics.GroupTotal
	err := r.scoped(ctx, q).
		Select(`
			COALESCE(category, '') AS key,
			COUNT(*) AS count,
			COALESCE(SUM(amount), 0) AS total
		`).
		Group("category").
		Scan(&groups).Error
	return groups, err
}

var _ analytics.PaymentSource = (*GormPaymentAnalyticsRepository)(nil)
