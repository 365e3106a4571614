// Package analytics declares the read-only query contracts the report
// engine consumes. Each source wraps one transactional domain (orders,
// customers, payments, products) and exposes grouped sum/count queries;
// the engine never writes through these interfaces.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange bounds a query in time. A nil side means unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// PeriodBucket is one year-month group of a time-bucketed aggregation
type PeriodBucket struct {
	Year  int
	Month int
	Count int64
	Total decimal.Decimal
}

// GroupTotal is one group of a field-bucketed aggregation
type GroupTotal struct {
	Key   string
	Count int64
	Total decimal.Decimal
}

// OrderQuery filters order aggregations
type OrderQuery struct {
	Range          DateRange
	Status         []string
	PaymentMethods []string
	MinTotal       *decimal.Decimal
	MaxTotal       *decimal.Decimal
}

// OrderSource provides grouped aggregations over sales orders
type OrderSource interface {
	// TotalsByPeriod sums order totals and counts per (year, month),
	// ordered ascending
	TotalsByPeriod(ctx context.Context, q OrderQuery) ([]PeriodBucket, error)

	// TotalsByPaymentMethod sums order totals per payment method
	TotalsByPaymentMethod(ctx context.Context, q OrderQuery) ([]GroupTotal, error)

	// TotalsByStatus sums order totals and counts per status
	TotalsByStatus(ctx context.Context, q OrderQuery) ([]GroupTotal, error)

	// RecurringCustomerCount counts customers with more than minOrders orders
	RecurringCustomerCount(ctx context.Context, q OrderQuery, minOrders int) (int64, error)

	// AverageOrderTotal returns the mean order total, zero when no orders match
	AverageOrderTotal(ctx context.Context, q OrderQuery) (decimal.Decimal, error)
}

// CustomerSource provides grouped aggregations over customer accounts
type CustomerSource interface {
	// CountCustomers counts customers, optionally scoped to a signup range
	CountCustomers(ctx context.Context, r DateRange) (int64, error)

	// SignupsByPeriod counts new customers per (year, month), ordered ascending
	SignupsByPeriod(ctx context.Context, r DateRange) ([]PeriodBucket, error)

	// CountByState counts customers per state; rows without a state are omitted
	CountByState(ctx context.Context, r DateRange) ([]GroupTotal, error)
}

// Payment record kinds distinguished by the financial aggregation
const (
	PaymentKindSale    = "sale"
	PaymentKindExpense = "expense"
)

// PaymentQuery filters payment aggregations by range and record kind
type PaymentQuery struct {
	Range DateRange
	Kind  string
}

// PaymentSource provides grouped aggregations over payment records
type PaymentSource interface {
	// TotalsByPeriod sums payment amounts per (year, month), ordered ascending
	TotalsByPeriod(ctx context.Context, q PaymentQuery) ([]PeriodBucket, error)

	// TotalsByCategory sums payment amounts per category
	TotalsByCategory(ctx context.Context, q PaymentQuery) ([]GroupTotal, error)
}

// ProductQuery filters product aggregations
type ProductQuery struct {
	Categories []string
}

// LowStockProduct is a product below the low-stock threshold
type LowStockProduct struct {
	ProductID uuid.UUID
	Name      string
	Stock     int64
}

// ProductSource provides grouped aggregations over the product catalog
type ProductSource interface {
	// TotalsByCategory counts products and sums price*stock per category.
	// Missing price or stock contributes zero.
	TotalsByCategory(ctx context.Context, q ProductQuery) ([]GroupTotal, error)

	// LowStock lists up to limit products with stock below threshold,
	// lowest stock first
	LowStock(ctx context.Context, threshold, limit int) ([]LowStockProduct, error)
}
