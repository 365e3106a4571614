package report

import (
	"context"
	"fmt"

	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
)

// Aggregator turns raw transactional records plus filters into one
// ReportData variant. Implementations are pure with respect to the
// report entity: they only read through the analytics sources.
type Aggregator interface {
	Aggregate(ctx context.Context, filters report.Filters) (report.ReportData, error)
}

// periodKey formats a (year, month) bucket as "YYYY-MM"
func periodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// orderQuery maps report filters onto the order source contract
func orderQuery(f report.Filters) analytics.OrderQuery {
	return analytics.OrderQuery{
		Range:          analytics.DateRange{Start: f.StartDate, End: f.EndDate},
		Status:         f.Status,
		PaymentMethods: f.PaymentMethod,
		MinTotal:       f.MinValue,
		MaxTotal:       f.MaxValue,
	}
}

// dateRange maps report filters onto a plain date range
func dateRange(f report.Filters) analytics.DateRange {
	return analytics.DateRange{Start: f.StartDate, End: f.EndDate}
}
