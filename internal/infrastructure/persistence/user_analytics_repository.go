package persistence

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"gorm.io/gorm"
)

// GormUserAnalyticsRepository implements analytics.CustomerSource over
// the users table, scoped to customer accounts
type GormUserAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormUserAnalyticsRepository creates a new GormUserAnalyticsRepository
func NewGormUserAnalyticsRepository(db *gorm.DB) *GormUserAnalyticsRepository {
	return &GormUserAnalyticsRepository{db: db}
}

func (r *GormUserAnalyticsRepository) scoped(ctx context.Context, dr analytics.DateRange) *gorm.DB {
	db := r.db.WithContext(ctx).Table("users").Where("role = ?", "customer")
	if dr.Start != nil {
		db = db.Where("created_at >= ?", *dr.Start)
	}
	if dr.End != nil {
		db = db.Where("created_at <= ?", *dr.End)
	}
	return db
}

// CountCustomers counts customers, optionally scoped to a signup range
func (r *GormUserAnalyticsRepository) CountCustomers(ctx context.Context, dr analytics.DateRange) (int64, error) {
	var count int64
	err := r.scoped(ctx, dr).Count(&count).Error
	return count, err
}

// SignupsByPeriod counts new customers per (year, month)
func (r *GormUserAnalyticsRepository) SignupsByPeriod(ctx context.Context, dr analytics.DateRange) ([]analytics.PeriodBucket, error) {
	var buckets []analytics.PeriodBucket
	err := r.scoped(ctx, dr).
		Select(`
			EXTRACT(YEAR FROM created_at)::int AS year,
			EXTRACT(MONTH FROM created_at)::int AS month,
			COUNT(*) AS count
		`).
		Group("1, 2").
		Order("1, 2").
		Scan(&buckets).Error
	return buckets, err
}

// CountByState counts customers per state; rows without a state are omitted
func (r *GormUserAnalyticsRepository) CountByState(ctx context.Context, dr analytics.DateRange) ([]analytics.GroupTotal, error) {
	var groups []analytics.GroupTotal
	err := r.scoped(ctx, dr).
		Select("state AS key, COUNT(*) AS count").
		Where("state IS NOT NULL AND state <> ''").
		Group("state").
		Scan(&groups).Error
	return groups, err
}

var _ analytics.CustomerSource = (*GormUserAnalyticsRepository)(nil)
