package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalData(t *testing.T) {
	t.Run("round trips sales data", func(t *testing.T) {
		original := &SalesData{
			TotalSales:  decimal.NewFromInt(2500),
			Count:       5,
			AverageSale: decimal.NewFromInt(500),
			ByPeriod: []PeriodValue{
				{Period: "2023-01", Value: decimal.NewFromInt(1000), Count: 2},
			},
			ByPaymentMethod: map[string]decimal.Decimal{
				"cash": decimal.NewFromInt(1500),
			},
		}

		raw, err := json.Marshal(original)
		require.NoError(t, err)

		decoded, err := UnmarshalData(TypeSales, raw)
		require.NoError(t, err)

		sales, ok := decoded.(*SalesData)
		require.True(t, ok)
		assert.True(t, sales.TotalSales.Equal(original.TotalSales))
		assert.Equal(t, original.Count, sales.Count)
		assert.Len(t, sales.ByPeriod, 1)
		assert.True(t, sales.ByPaymentMethod["cash"].Equal(decimal.NewFromInt(1500)))
	})

	t.Run("variant matches the declared type", func(t *testing.T) {
		for _, typ := range AllTypes() {
			decoded, err := UnmarshalData(typ, []byte(`{}`))
			require.NoError(t, err)
			assert.Equal(t, typ, decoded.ReportType())
		}
	})

	t.Run("empty payload decodes to nil", func(t *testing.T) {
		decoded, err := UnmarshalData(TypeSales, nil)
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})

	t.Run("unknown type is an error", func(t *testing.T) {
		_, err := UnmarshalData(Type("weather"), []byte(`{}`))
		assert.Error(t, err)
	})
}

func TestReportDataWireNames(t *testing.T) {
	raw, err := json.Marshal(&FinancialData{
		Revenue:            decimal.NewFromInt(8000),
		Expenses:           decimal.NewFromInt(2000),
		Profit:             decimal.NewFromInt(6000),
		ByPeriod:           []FinancialPeriod{},
		ExpensesByCategory: map[string]decimal.Decimal{},
	})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, name := range []string{"revenue", "expenses", "profit", "byPeriod", "expensesByCategory"} {
		assert.Contains(t, fields, name)
	}
}
