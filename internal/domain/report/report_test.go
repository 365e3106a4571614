package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewReport(t *testing.T) {
	owner := uuid.New()

	t.Run("creates pending report with defaults", func(t *testing.T) {
		rep, err := NewReport("Monthly Sales", TypeSales, Filters{}, "", owner)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, rep.ID)
		assert.Equal(t, "Monthly Sales", rep.Name)
		assert.Equal(t, TypeSales, rep.Type)
		assert.Equal(t, FormatJSON, rep.Format)
		assert.Equal(t, StatusPending, rep.Status)
		assert.Nil(t, rep.Data)
		assert.Empty(t, rep.ErrorMessage)
		assert.Equal(t, owner, rep.CreatedBy)
	})

	t.Run("accepts explicit formats", func(t *testing.T) {
		rep, err := NewReport("Quarterly", TypeFinancial, Filters{}, FormatPDF, owner)
		require.NoError(t, err)
		assert.Equal(t, FormatPDF, rep.Format)
	})

	t.Run("rejects short name", func(t *testing.T) {
		_, err := NewReport("ab", TypeSales, Filters{}, FormatJSON, owner)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewReport("Report", Type("weather"), Filters{}, FormatJSON, owner)
		assert.ErrorIs(t, err, shared.ErrUnsupportedReportType)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := NewReport("Report", TypeSales, Filters{}, Format("xml"), owner)
		require.Error(t, err)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		filters := Filters{
			StartDate: date(2023, time.March, 1),
			EndDate:   date(2023, time.January, 1),
		}
		_, err := NewReport("Report", TypeSales, filters, FormatJSON, owner)
		assert.ErrorIs(t, err, shared.ErrInvalidDateRange)
	})
}

func TestReportLifecycle(t *testing.T) {
	owner := uuid.New()

	newPending := func(t *testing.T) *Report {
		rep, err := NewReport("Lifecycle", TypeSales, Filters{}, FormatJSON, owner)
		require.NoError(t, err)
		return rep
	}

	t.Run("pending to processing", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		assert.Equal(t, StatusProcessing, rep.Status)
		assert.False(t, rep.IsTerminal())
	})

	t.Run("cannot start processing twice", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		assert.ErrorIs(t, rep.StartProcessing(), shared.ErrInvalidState)
	})

	t.Run("complete attaches data", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())

		data := &SalesData{TotalSales: decimal.NewFromInt(100), Count: 2}
		require.NoError(t, rep.Complete(data))

		assert.Equal(t, StatusCompleted, rep.Status)
		assert.Equal(t, data, rep.Data)
		assert.Empty(t, rep.ErrorMessage)
		assert.True(t, rep.IsTerminal())
	})

	t.Run("complete rejects nil data", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		assert.ErrorIs(t, rep.Complete(nil), shared.ErrInvalidState)
	})

	t.Run("complete rejects mismatched data type", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		assert.ErrorIs(t, rep.Complete(&OrdersData{}), shared.ErrInvalidState)
	})

	t.Run("complete requires processing state", func(t *testing.T) {
		rep := newPending(t)
		assert.ErrorIs(t, rep.Complete(&SalesData{}), shared.ErrInvalidState)
	})

	t.Run("fail records message and clears data", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		require.NoError(t, rep.Fail("aggregation timed out"))

		assert.Equal(t, StatusError, rep.Status)
		assert.Equal(t, "aggregation timed out", rep.ErrorMessage)
		assert.Nil(t, rep.Data)
		assert.True(t, rep.IsTerminal())
	})

	t.Run("fail normalizes empty message", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		require.NoError(t, rep.Fail(""))
		assert.Equal(t, "unknown error", rep.ErrorMessage)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		rep := newPending(t)
		require.NoError(t, rep.StartProcessing())
		require.NoError(t, rep.Complete(&SalesData{}))

		assert.ErrorIs(t, rep.StartProcessing(), shared.ErrInvalidState)
		assert.ErrorIs(t, rep.Fail("late failure"), shared.ErrInvalidState)
		assert.Equal(t, StatusCompleted, rep.Status)
	})
}

func TestFingerprint(t *testing.T) {
	owner := uuid.New()
	min := decimal.NewFromInt(50)

	filters := Filters{
		StartDate:     date(2023, time.January, 1),
		EndDate:       date(2023, time.June, 30),
		Status:        []string{"delivered"},
		PaymentMethod: []string{"cash", "credit"},
		MinValue:      &min,
	}

	t.Run("equal inputs share a fingerprint", func(t *testing.T) {
		a, err := NewReport("First", TypeSales, filters, FormatJSON, owner)
		require.NoError(t, err)
		b, err := NewReport("Second", TypeSales, filters, FormatPDF, uuid.New())
		require.NoError(t, err)

		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("type changes the fingerprint", func(t *testing.T) {
		a, err := NewReport("First", TypeSales, filters, FormatJSON, owner)
		require.NoError(t, err)
		b, err := NewReport("Second", TypeOrders, filters, FormatJSON, owner)
		require.NoError(t, err)

		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("filters change the fingerprint", func(t *testing.T) {
		a, err := NewReport("First", TypeSales, filters, FormatJSON, owner)
		require.NoError(t, err)
		b, err := NewReport("Second", TypeSales, Filters{}, FormatJSON, owner)
		require.NoError(t, err)

		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}
