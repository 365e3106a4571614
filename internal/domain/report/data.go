package report

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportData is the sum type over the five computed report shapes.
// The concrete variant always agrees with the owning report's Type.
type ReportData interface {
	ReportType() Type
}

// PeriodValue is one year-month bucket of a grouped aggregation
type PeriodValue struct {
	Period string          `json:"period"` // "YYYY-MM"
	Value  decimal.Decimal `json:"value"`
	Count  int64           `json:"count"`
}

// SalesData summarizes order revenue over the filtered period
type SalesData struct {
	TotalSales      decimal.Decimal            `json:"totalSales"`
	Count           int64                      `json:"count"`
	AverageSale     decimal.Decimal            `json:"averageSale"`
	ByPeriod        []PeriodValue              `json:"byPeriod"`
	ByPaymentMethod map[string]decimal.Decimal `json:"byPaymentMethod"`
}

func (SalesData) ReportType() Type { return TypeSales }

// CategoryValue is per-category stock count and value
type CategoryValue struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Value    decimal.Decimal `json:"value"`
}

// LowStockItem is a product whose stock fell below the low-stock threshold
type LowStockItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Stock     int64     `json:"stock"`
}

// InventoryData summarizes stock levels and value by category
type InventoryData struct {
	TotalItems int64           `json:"totalItems"`
	TotalValue decimal.Decimal `json:"totalValue"`
	ByCategory []CategoryValue `json:"byCategory"`
	LowStock   []LowStockItem  `json:"lowStock"`
}

func (InventoryData) ReportType() Type { return TypeInventory }

// CustomersData summarizes the customer base over the filtered period
type CustomersData struct {
	TotalCustomers  int64            `json:"totalCustomers"`
	NewCustomers    int64            `json:"newCustomers"`
	Recurring       int64            `json:"recurring"`
	AveragePurchase decimal.Decimal  `json:"averagePurchase"`
	ByLocation      map[string]int64 `json:"byLocation"`
}

func (CustomersData) ReportType() Type { return TypeCustomers }

// OrdersData summarizes order volume by status and period
type OrdersData struct {
	TotalOrders  int64            `json:"totalOrders"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	AverageValue decimal.Decimal  `json:"averageValue"`
	ByStatus     map[string]int64 `json:"byStatus"`
	ByPeriod     []PeriodValue    `json:"byPeriod"`
}

func (OrdersData) ReportType() Type { return TypeOrders }

// FinancialPeriod is one year-month bucket of the merged revenue/expense view
type FinancialPeriod struct {
	Period   string          `json:"period"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// FinancialData summarizes revenue, expenses and profit
type FinancialData struct {
	Revenue            decimal.Decimal            `json:"revenue"`
	Expenses           decimal.Decimal            `json:"expenses"`
	Profit             decimal.Decimal            `json:"profit"`
	ByPeriod           []FinancialPeriod          `json:"byPeriod"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
}

func (FinancialData) ReportType() Type { return TypeFinancial }

// UnmarshalData decodes a persisted data payload into the variant for typ
func UnmarshalData(typ Type, raw []byte) (ReportData, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	switch typ {
	case TypeSales:
		var d SalesData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &d, nil
	case TypeInventory:
		var d InventoryData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &d, nil
	case TypeCustomers:
		var d CustomersData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &d, nil
	case TypeOrders:
		var d OrdersData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &d, nil
	case TypeFinancial:
		var d FinancialData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("cannot decode data for report type %q", typ)
	}
}
