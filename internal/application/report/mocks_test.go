package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Save(ctx context.Context, r *report.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportRepository) Update(ctx context.Context, r *report.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Report), args.Error(1)
}

func (m *MockReportRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]report.Report, int64, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]report.Report), args.Get(1).(int64), args.Error(2)
}

// MockOrderSource is a mock implementation of analytics.OrderSource
type MockOrderSource struct {
	mock.Mock
}

func (m *MockOrderSource) TotalsByPeriod(ctx context.Context, q analytics.OrderQuery) ([]analytics.PeriodBucket, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.PeriodBucket), args.Error(1)
}

func (m *MockOrderSource) TotalsByPaymentMethod(ctx context.Context, q analytics.OrderQuery) ([]analytics.GroupTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.GroupTotal), args.Error(1)
}

func (m *MockOrderSource) TotalsByStatus(ctx context.Context, q analytics.OrderQuery) ([]analytics.GroupTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.GroupTotal), args.Error(1)
}

func (m *MockOrderSource) RecurringCustomerCount(ctx context.Context, q analytics.OrderQuery, minOrders int) (int64, error) {
	args := m.Called(ctx, q, minOrders)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderSource) AverageOrderTotal(ctx context.Context, q analytics.OrderQuery) (decimal.Decimal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCustomerSource is a mock implementation of analytics.CustomerSource
type MockCustomerSource struct {
	mock.Mock
}

func (m *MockCustomerSource) CountCustomers(ctx context.Context, r analytics.DateRange) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerSource) SignupsByPeriod(ctx context.Context, r analytics.DateRange) ([]analytics.PeriodBucket, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.PeriodBucket), args.Error(1)
}

func (m *MockCustomerSource) CountByState(ctx context.Context, r analytics.DateRange) ([]analytics.GroupTotal, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.GroupTotal), args.Error(1)
}

// MockPaymentSource is a mock implementation of analytics.PaymentSource
type MockPaymentSource struct {
	mock.Mock
}

func (m *MockPaymentSource) TotalsByPeriod(ctx context.Context, q analytics.PaymentQuery) ([]analytics.PeriodBucket, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.PeriodBucket), args.Error(1)
}

func (m *MockPaymentSource) TotalsByCategory(ctx context.Context, q analytics.PaymentQuery) ([]analytics.GroupTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.GroupTotal), args.Error(1)
}

// MockProductSource is a mock implementation of analytics.ProductSource
type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) TotalsByCategory(ctx context.Context, q analytics.ProductQuery) ([]analytics.GroupTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.GroupTotal), args.Error(1)
}

func (m *MockProductSource) LowStock(ctx context.Context, threshold, limit int) ([]analytics.LowStockProduct, error) {
	args := m.Called(ctx, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.LowStockProduct), args.Error(1)
}

// mapCache is a minimal unbounded ResultCache for service tests
type mapCache struct {
	entries map[string]report.ReportData
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]report.ReportData)}
}

func (c *mapCache) Get(key string) (report.ReportData, bool) {
	data, ok := c.entries[key]
	return data, ok
}

func (c *mapCache) Put(key string, data report.ReportData) {
	c.entries[key] = data
}

// syncDispatcher runs tasks inline, making the async step deterministic
type syncDispatcher struct{}

func (syncDispatcher) Submit(name string, task func(ctx context.Context)) error {
	task(context.Background())
	return nil
}

// failingDispatcher rejects every submission
type failingDispatcher struct{}

func (failingDispatcher) Submit(name string, task func(ctx context.Context)) error {
	return errors.New("queue is full")
}

// recordingDispatcher captures tasks without running them
type recordingDispatcher struct {
	names []string
	tasks []func(ctx context.Context)
}

func (d *recordingDispatcher) Submit(name string, task func(ctx context.Context)) error {
	d.names = append(d.names, name)
	d.tasks = append(d.tasks, task)
	return nil
}
