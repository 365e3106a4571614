package handler

import (
	"time"

	"github.com/retailops/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// FiltersRequest carries the optional aggregation filters. It binds
// from the JSON creation payload and from statistics query strings.
type FiltersRequest struct {
	StartDate       *time.Time `json:"startDate" form:"startDate" time_format:"2006-01-02"`
	EndDate         *time.Time `json:"endDate" form:"endDate" time_format:"2006-01-02"`
	Status          []string   `json:"status" form:"status"`
	PaymentMethod   []string   `json:"paymentMethod" form:"paymentMethod"`
	ProductCategory []string   `json:"productCategory" form:"productCategory"`
	MinValue        *float64   `json:"minValue" form:"minValue"`
	MaxValue        *float64   `json:"maxValue" form:"maxValue"`
}

func (f FiltersRequest) toDomain() report.Filters {
	filters := report.Filters{
		StartDate:       f.StartDate,
		EndDate:         f.EndDate,
		Status:          f.Status,
		PaymentMethod:   f.PaymentMethod,
		ProductCategory: f.ProductCategory,
	}
	if f.MinValue != nil {
		min := decimal.NewFromFloat(*f.MinValue)
		filters.MinValue = &min
	}
	if f.MaxValue != nil {
		max := decimal.NewFromFloat(*f.MaxValue)
		filters.MaxValue = &max
	}
	return filters
}

// CreateReportRequest is the creation payload
type CreateReportRequest struct {
	Name    string         `json:"name" binding:"required,min=3"`
	Type    string         `json:"type" binding:"required,oneof=sales inventory customers orders financial"`
	Format  string         `json:"format" binding:"omitempty,oneof=json pdf excel"`
	Filters FiltersRequest `json:"filters"`
}

// ListReportsRequest carries pagination parameters
type ListReportsRequest struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ReportResponse is the wire rendering of a report record
type ReportResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Format       string            `json:"format"`
	Status       string            `json:"status"`
	Filters      report.Filters    `json:"filters"`
	Data         report.ReportData `json:"data"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	CreatedBy    string            `json:"createdBy"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func toReportResponse(r *report.Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		Type:         string(r.Type),
		Format:       string(r.Format),
		Status:       string(r.Status),
		Filters:      r.Filters,
		Data:         r.Data,
		ErrorMessage: r.ErrorMessage,
		CreatedBy:    r.CreatedBy.String(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
