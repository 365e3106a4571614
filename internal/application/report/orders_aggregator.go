package report

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// OrdersAggregator computes order volume grouped by status and month
type OrdersAggregator struct {
	orders analytics.OrderSource
}

// NewOrdersAggregator creates a new OrdersAggregator
func NewOrdersAggregator(orders analytics.OrderSource) *OrdersAggregator {
	return &OrdersAggregator{orders: orders}
}

// Aggregate computes the orders report for the given filters.
// Totals derive from the status grouping.
func (a *OrdersAggregator) Aggregate(ctx context.Context, filters report.Filters) (report.ReportData, error) {
	q := orderQuery(filters)

	byStatus, err := a.orders.TotalsByStatus(ctx, q)
	if err != nil {
		return nil, err
	}

	byPeriod, err := a.orders.TotalsByPeriod(ctx, q)
	if err != nil {
		return nil, err
	}

	data := &report.OrdersData{
		ByStatus: make(map[string]int64, len(byStatus)),
		ByPeriod: make([]report.PeriodValue, 0, len(byPeriod)),
	}

	for _, g := range byStatus {
		data.ByStatus[g.Key] = g.Count
		data.TotalOrders += g.Count
		data.TotalValue = data.TotalValue.Add(g.Total)
	}

	if data.TotalOrders > 0 {
		data.AverageValue = data.TotalValue.Div(decimal.NewFromInt(data.TotalOrders))
	}

	for _, b := range byPeriod {
		data.ByPeriod = append(data.ByPeriod, report.PeriodValue{
			Period: periodKey(b.Year, b.Month),
			Value:  b.Total,
			Count:  b.Count,
		})
	}

	return data, nil
}

var _ Aggregator = (*OrdersAggregator)(nil)
