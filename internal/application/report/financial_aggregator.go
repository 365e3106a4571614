package report

import (
	"context"
	"sort"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// FinancialAggregator computes revenue, expenses and profit per month
type FinancialAggregator struct {
	payments analytics.PaymentSource
}

// NewFinancialAggregator creates a new FinancialAggregator
func NewFinancialAggregator(payments analytics.PaymentSource) *FinancialAggregator {
	return &FinancialAggregator{payments: payments}
}

// Aggregate computes the financial report for the given filters.
// Revenue and expense periods are merged by period key; a period present
// on only one side contributes zero to the other.
func (a *FinancialAggregator) Aggregate(ctx context.Context, filters report.Filters) (report.ReportData, error) {
	r := dateRange(filters)

	revenue, err := a.payments.TotalsByPeriod(ctx, analytics.PaymentQuery{Range: r, Kind: analytics.PaymentKindSale})
	if err != nil {
		return nil, err
	}

	expenses, err := a.payments.TotalsByPeriod(ctx, analytics.PaymentQuery{Range: r, Kind: analytics.PaymentKindExpense})
	if err != nil {
		return nil, err
	}

	expenseCategories, err := a.payments.TotalsByCategory(ctx, analytics.PaymentQuery{Range: r, Kind: analytics.PaymentKindExpense})
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*report.FinancialPeriod, len(revenue)+len(expenses))
	periodAt := func(key string) *report.FinancialPeriod {
		if p, ok := merged[key]; ok {
			return p
		}
		p := &report.FinancialPeriod{Period: key}
		merged[key] = p
		return p
	}

	data := &report.FinancialData{
		ExpensesByCategory: make(map[string]decimal.Decimal, len(expenseCategories)),
	}

	for _, b := range revenue {
		p := periodAt(periodKey(b.Year, b.Month))
		p.Revenue = p.Revenue.Add(b.Total)
		data.Revenue = data.Revenue.Add(b.Total)
	}

	for _, b := range expenses {
		p := periodAt(periodKey(b.Year, b.Month))
		p.Expenses = p.Expenses.Add(b.Total)
		data.Expenses = data.Expenses.Add(b.Total)
	}

	data.Profit = data.Revenue.Sub(data.Expenses)

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	// "YYYY-MM" keys sort chronologically as strings
	sort.Strings(keys)

	data.ByPeriod = make([]report.FinancialPeriod, 0, len(keys))
	for _, key := range keys {
		p := merged[key]
		p.Profit = p.Revenue.Sub(p.Expenses)
		data.ByPeriod = append(data.ByPeriod, *p)
	}

	for _, g := range expenseCategories {
		data.ExpensesByCategory[g.Key] = g.Total
	}

	return data, nil
}

var _ Aggregator = (*FinancialAggregator)(nil)
