package report

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// SalesAggregator computes revenue totals grouped by month and payment method
type SalesAggregator struct {
	orders analytics.OrderSource
}

// NewSalesAggregator creates a new SalesAggregator
func NewSalesAggregator(orders analytics.OrderSource) *SalesAggregator {
	return &SalesAggregator{orders: orders}
}

// Aggregate computes the sales report for the given filters
func (a *SalesAggregator) Aggregate(ctx context.Context, filters report.Filters) (report.ReportData, error) {
	q := orderQuery(filters)

	buckets, err := a.orders.TotalsByPeriod(ctx, q)
	if err != nil {
		return nil, err
	}

	byMethod, err := a.orders.TotalsByPaymentMethod(ctx, q)
	if err != nil {
		return nil, err
	}

	data := &report.SalesData{
		ByPeriod:        make([]report.PeriodValue, 0, len(buckets)),
		ByPaymentMethod: make(map[string]decimal.Decimal, len(byMethod)),
	}

	for _, b := range buckets {
		data.TotalSales = data.TotalSales.Add(b.Total)
		data.Count += b.Count
		data.ByPeriod = append(data.ByPeriod, report.PeriodValue{
			Period: periodKey(b.Year, b.Month),
			Value:  b.Total,
			Count:  b.Count,
		})
	}

	if data.Count > 0 {
		data.AverageSale = data.TotalSales.Div(decimal.NewFromInt(data.Count))
	}

	for _, g := range byMethod {
		data.ByPaymentMethod[g.Key] = g.Total
	}

	return data, nil
}

var _ Aggregator = (*SalesAggregator)(nil)
