package report

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/analytics"
	"github.com/retailops/backend/internal/domain/report"
	"github.com/retailops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ResultCache memoizes finished aggregation results keyed by fingerprint.
// Implementations must be safe for concurrent use; Get has no side effects.
type ResultCache interface {
	Get(key string) (report.ReportData, bool)
	Put(key string, data report.ReportData)
}

// Dispatcher schedules deferred, non-blocking work. Submit must return
// before the task runs; the caller observes the outcome only by polling
// the report's status.
type Dispatcher interface {
	Submit(name string, task func(ctx context.Context)) error
}

// CreateReportInput carries the creation request
type CreateReportInput struct {
	Name      string
	Type      report.Type
	Format    report.Format
	Filters   report.Filters
	CreatedBy uuid.UUID
}

// ReportListResult is a page of a user's reports
type ReportListResult struct {
	Reports    []report.Report
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ReportService orchestrates the report lifecycle: it creates pending
// records, dispatches asynchronous aggregation, drives the status state
// machine and memoizes finished results.
type ReportService struct {
	reports     report.Repository
	aggregators map[report.Type]Aggregator
	cache       ResultCache
	dispatcher  Dispatcher
	logger      *zap.Logger
}

// NewReportService creates a new ReportService wired to the four
// analytics sources
func NewReportService(
	reports report.Repository,
	orders analytics.OrderSource,
	customers analytics.CustomerSource,
	payments analytics.PaymentSource,
	products analytics.ProductSource,
	cache ResultCache,
	dispatcher Dispatcher,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reports: reports,
		aggregators: map[report.Type]Aggregator{
			report.TypeSales:     NewSalesAggregator(orders),
			report.TypeInventory: NewInventoryAggregator(products),
			report.TypeCustomers: NewCustomersAggregator(customers, orders),
			report.TypeOrders:    NewOrdersAggregator(orders),
			report.TypeFinancial: NewFinancialAggregator(payments),
		},
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateReport validates the request, persists a pending record and
// schedules the computation. It never blocks on aggregation.
func (s *ReportService) CreateReport(ctx context.Context, input CreateReportInput) (*report.Report, error) {
	rep, err := report.NewReport(input.Name, input.Type, input.Filters, input.Format, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(ctx, rep); err != nil {
		return nil, err
	}

	id := rep.ID
	if err := s.dispatcher.Submit("report:"+id.String(), func(taskCtx context.Context) {
		s.GenerateReportData(taskCtx, id)
	}); err != nil {
		// The record stays pending and observable; generation can be
		// re-driven once the dispatcher accepts work again.
		s.logger.Warn("failed to dispatch report generation",
			zap.String("report_id", id.String()),
			zap.Error(err),
		)
	}

	return rep, nil
}

// GenerateReportData runs the deferred computation step for one report.
// It is a silent no-op when the report no longer exists, and it never
// propagates computation failures: they end up in the report's own state.
func (s *ReportService) GenerateReportData(ctx context.Context, id uuid.UUID) {
	rep, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return
		}
		s.logger.Error("failed to load report for generation",
			zap.String("report_id", id.String()),
			zap.Error(err),
		)
		return
	}

	if err := rep.StartProcessing(); err != nil {
		s.logger.Warn("report not in a dispatchable state",
			zap.String("report_id", id.String()),
			zap.String("status", string(rep.Status)),
		)
		return
	}
	if err := s.reports.Update(ctx, rep); err != nil {
		s.logger.Error("failed to mark report processing",
			zap.String("report_id", id.String()),
			zap.Error(err),
		)
		return
	}

	key := rep.Fingerprint()
	if data, ok := s.cache.Get(key); ok {
		s.finish(ctx, rep, data, nil)
		return
	}

	data, err := s.compute(ctx, rep.Type, rep.Filters)
	if err == nil {
		s.cache.Put(key, data)
	}
	s.finish(ctx, rep, data, err)
}

// compute dispatches to the aggregator for typ, converting panics into
// errors so a failing aggregation can never take down the worker
func (s *ReportService) compute(ctx context.Context, typ report.Type, filters report.Filters) (data report.ReportData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.New("unknown error")
			}
		}
	}()

	agg, ok := s.aggregators[typ]
	if !ok {
		return nil, shared.ErrUnsupportedReportType
	}
	return agg.Aggregate(ctx, filters)
}

// finish drives the report into its terminal state and persists it
func (s *ReportService) finish(ctx context.Context, rep *report.Report, data report.ReportData, computeErr error) {
	if computeErr != nil {
		if err := rep.Fail(computeErr.Error()); err != nil {
			s.logger.Error("invalid report transition", zap.String("report_id", rep.ID.String()), zap.Error(err))
			return
		}
	} else {
		if err := rep.Complete(data); err != nil {
			s.logger.Error("invalid report transition", zap.String("report_id", rep.ID.String()), zap.Error(err))
			return
		}
	}

	if err := s.reports.Update(ctx, rep); err != nil {
		s.logger.Error("failed to persist report result",
			zap.String("report_id", rep.ID.String()),
			zap.String("status", string(rep.Status)),
			zap.Error(err),
		)
	}
}

// GetReport returns a report by id
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	return s.reports.FindByID(ctx, id)
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListUserReports returns the owner's reports, newest first
func (s *ReportService) ListUserReports(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (*ReportListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	reports, total, err := s.reports.FindByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ReportListResult{
		Reports:    reports,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// DownloadReport serializes a completed report's data. Only the json
// format is renderable; pdf and excel are accepted at creation but
// rejected here.
func (s *ReportService) DownloadReport(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	rep, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if rep.Format != report.FormatJSON {
		return nil, "", shared.ErrNotImplemented
	}
	if rep.Status != report.StatusCompleted {
		return nil, "", shared.NewDomainError("REPORT_NOT_READY", "Report has not completed yet")
	}

	payload, err := json.Marshal(rep.Data)
	if err != nil {
		return nil, "", err
	}
	return payload, "application/json", nil
}

// Statistics computes an on-demand aggregation for dashboards. It
// bypasses the report store and the result cache entirely.
func (s *ReportService) Statistics(ctx context.Context, typ report.Type, filters report.Filters) (report.ReportData, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	return s.compute(ctx, typ, filters)
}
