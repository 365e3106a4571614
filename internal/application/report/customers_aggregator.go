package report

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
)

// A customer is recurring once it has placed more than this many orders
const recurringOrderThreshold = 1

// CustomersAggregator computes customer base statistics
type CustomersAggregator struct {
	customers analytics.CustomerSource
	orders    analytics.OrderSource
}

// NewCustomersAggregator creates a new CustomersAggregator
func NewCustomersAggregator(customers analytics.CustomerSource, orders analytics.OrderSource) *CustomersAggregator {
	return &CustomersAggregator{customers: customers, orders: orders}
}

// Aggregate computes the customers report for the given filters.
// NewCustomers is the sum of the period signup buckets; recurring and
// average purchase figures are computed over all orders, not only the
// filtered range.
func (a *CustomersAggregator) Aggregate(ctx context.Context, filters report.Filters) (report.ReportData, error) {
	r := dateRange(filters)

	total, err := a.customers.CountCustomers(ctx, r)
	if err != nil {
		return nil, err
	}

	signups, err := a.customers.SignupsByPeriod(ctx, r)
	if err != nil {
		return nil, err
	}

	byState, err := a.customers.CountByState(ctx, r)
	if err != nil {
		return nil, err
	}

	recurring, err := a.orders.RecurringCustomerCount(ctx, analytics.OrderQuery{}, recurringOrderThreshold)
	if err != nil {
		return nil, err
	}

	avgPurchase, err := a.orders.AverageOrderTotal(ctx, analytics.OrderQuery{})
	if err != nil {
		return nil, err
	}

	data := &report.CustomersData{
		TotalCustomers:  total,
		Recurring:       recurring,
		AveragePurchase: avgPurchase,
		ByLocation:      make(map[string]int64, len(byState)),
	}

	for _, b := range signups {
		data.NewCustomers += b.Count
	}

	for _, g := range byState {
		if g.Key == "" {
			continue
		}
		data.ByLocation[g.Key] = g.Count
	}

	return data, nil
}

var _ Aggregator = (*CustomersAggregator)(nil)
