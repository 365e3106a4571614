package report

import (
	"context"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
)

// Low-stock view parameters. The threshold and page size are part of the
// report contract, not tunables.
const (
	lowStockThreshold = 5
	lowStockLimit     = 10
)

// InventoryAggregator computes stock counts and value grouped by category
type InventoryAggregator struct {
	products analytics.ProductSource
}

// NewInventoryAggregator creates a new InventoryAggregator
func NewInventoryAggregator(products analytics.ProductSource) *InventoryAggregator {
	return &InventoryAggregator{products: products}
}

// Aggregate computes the inventory report for the given filters
func (a *InventoryAggregator) Aggregate(ctx context.Context, filters report.Filters) (report.ReportData, error) {
	byCategory, err := a.products.TotalsByCategory(ctx, analytics.ProductQuery{
		Categories: filters.ProductCategory,
	})
	if err != nil {
		return nil, err
	}

	lowStock, err := a.products.LowStock(ctx, lowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, err
	}

	data := &report.InventoryData{
		ByCategory: make([]report.CategoryValue, 0, len(byCategory)),
		LowStock:   make([]report.LowStockItem, 0, len(lowStock)),
	}

	for _, g := range byCategory {
		data.TotalItems += g.Count
		data.TotalValue = data.TotalValue.Add(g.Total)
		data.ByCategory = append(data.ByCategory, report.CategoryValue{
			Category: g.Key,
			Count:    g.Count,
			Value:    g.Total,
		})
	}

	for _, p := range lowStock {
		data.LowStock = append(data.LowStock, report.LowStockItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Stock:     p.Stock,
		})
	}

	return data, nil
}

var _ Aggregator = (*InventoryAggregator)(nil)
