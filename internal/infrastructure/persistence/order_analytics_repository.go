package persistence

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderAnalyticsRepository implements analytics.OrderSource with
// grouped aggregations over the orders table
type GormOrderAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormOrderAnalyticsRepository creates a new GormOrderAnalyticsRepository
func NewGormOrderAnalyticsRepository(db *gorm.DB) *GormOrderAnalyticsRepository {
	return &GormOrderAnalyticsRepository{db: db}
}

// scoped applies the order query filters
func (r *GormOrderAnalyticsRepository) scoped(ctx context.Context, q analytics.OrderQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Table("orders")
	if q.Range.Start != nil {
		db = db.Where("created_at >= ?", *q.Range.Start)
	}
	if q.Range.End != nil {
		db = db.Where("created_at <= ?", *q.Range.End)
	}
	if len(q.Status) > 0 {
		db = db.Where("status IN ?", q.Status)
	}
	if len(q.PaymentMethods) > 0 {
		db = db.Where("payment_method IN ?", q.PaymentMethods)
	}
	if q.MinTotal != nil {
		db = db.Where("total_amount >= ?", *q.MinTotal)
	}
	if q.MaxTotal != nil {
		db = db.Where("total_amount <= ?", *q.MaxTotal)
	}
	return db
}

// TotalsByPeriod sums order totals and counts per (year, month)
func (r *GormOrderAnalyticsRepository) TotalsByPeriod(ctx context.Context, q analytics.OrderQuery) ([]analytics.PeriodBucket, error) {
	var buckets []analytics.PeriodBucket
	err := r.scoped(ctx, q).
		Select(`
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total
		`).
		Group("1, 2").
		Order("1, 2").
		Scan(&buckets).Error
	return buckets, err
}

// TotalsByPaymentMethod sums order totals per payment method
func (r *GormOrderAnalyticsRepository) TotalsByPaymentMethod(ctx context.Context, q analytics.OrderQuery) ([]analytics.GroupTotal, error) {
	var groups []analytics.GroupTotal
	err := r.scoped(ctx, q).
		Select(`
			payment_method AS key,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total
		`).
		Group("payment_method").
		Scan(&groups).Error
	return groups, err
}

// TotalsByStatus sums order totals and counts per status
func (r *GormOrderAnalyticsRepository) TotalsByStatus(ctx context.Context, q analytics.OrderQuery) ([]analytics.GroupTotal, error) {
	var groups []analytics.GroupTotal
	err := r.scoped(ctx, q).
		Select(`
			status AS key,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total
		`).
		Group("status").
		Scan(&groups).Error
	return groups, err
}

// RecurringCustomerCount counts customers with more than minOrders orders
func (r *GormOrderAnalyticsRepository) RecurringCustomerCount(ctx context.Context, q analytics.OrderQuery, minOrders int) (int64, error) {
	sub := r.scoped(ctx, q).
		Select("customer_id").
		Group("customer_id").
		Having("COUNT(*) > ?", minOrders)

	var count int64
	err := r.db.WithContext(ctx).Table("(?) AS recurring", sub).Count(&count).Error
	return count, err
}

// AverageOrderTotal returns the mean order total, zero when no orders match
func (r *GormOrderAnalyticsRepository) AverageOrderTotal(ctx context.Context, q analytics.OrderQuery) (decimal.Decimal, error) {
	var result struct {
		AvgTotal decimal.Decimal
	}
	err := r.scoped(ctx, q).
		Select("COALESCE(AVG(total_amount), 0) AS avg_total").
		Scan(&result).Error
	return result.AvgTotal, err
}

var _ analytics.OrderSource = (*GormOrderAnalyticsRepository)(nil)
