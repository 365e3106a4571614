package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Type identifies which aggregation a report runs
type Type string

const (
	TypeSales     Type = "sales"
	TypeInventory Type = "inventory"
	TypeCustomers Type = "customers"
	TypeOrders    Type = "orders"
	TypeFinancial Type = "financial"
)

// AllTypes returns all supported report types
func AllTypes() []Type {
	return []Type{TypeSales, TypeInventory, TypeCustomers, TypeOrders, TypeFinancial}
}

// IsValid reports whether t is a known report type
func (t Type) IsValid() bool {
	switch t {
	case TypeSales, TypeInventory, TypeCustomers, TypeOrders, TypeFinancial:
		return true
	}
	return false
}

// Format identifies the requested download format
type Format string

const (
	FormatJSON  Format = "json"
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// IsValid reports whether f is a known format
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatPDF, FormatExcel:
		return true
	}
	return false
}

// Status represents the report lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Filters constrains the records an aggregation reads.
// Every field is optional; absence means no constraint on that dimension.
type Filters struct {
	StartDate       *time.Time       `json:"startDate,omitempty"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
	Status          []string         `json:"status,omitempty"`
	PaymentMethod   []string         `json:"paymentMethod,omitempty"`
	ProductCategory []string         `json:"productCategory,omitempty"`
	MinValue        *decimal.Decimal `json:"minValue,omitempty"`
	MaxValue        *decimal.Decimal `json:"maxValue,omitempty"`
}

// Validate checks the filter's internal consistency
func (f Filters) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return shared.ErrInvalidDateRange
	}
	return nil
}

// Report is a persisted unit of requested analytics work
type Report struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Type         Type       `json:"type"`
	Filters      Filters    `json:"filters"`
	Format       Format     `json:"format"`
	Status       Status     `json:"status"`
	Data         ReportData `json:"data"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedBy    uuid.UUID  `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

const minNameLength = 3

// NewReport validates the request and returns a pending report
func NewReport(name string, typ Type, filters Filters, format Format, createdBy uuid.UUID) (*Report, error) {
	if len(name) < minNameLength {
		return nil, shared.NewDomainError("INVALID_INPUT", "Report name must be at least 3 characters")
	}
	if !typ.IsValid() {
		return nil, shared.ErrUnsupportedReportType
	}
	if format == "" {
		format = FormatJSON
	}
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unsupported report format")
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Report{
		ID:        uuid.New(),
		Name:      name,
		Type:      typ,
		Filters:   filters,
		Format:    format,
		Status:    StatusPending,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// StartProcessing transitions the report from pending to processing
func (r *Report) StartProcessing() error {
	if r.Status != StatusPending {
		return shared.ErrInvalidState
	}
	r.Status = StatusProcessing
	r.UpdatedAt = time.Now()
	return nil
}

// Complete attaches the computed data and transitions to completed
func (r *Report) Complete(data ReportData) error {
	if r.Status != StatusProcessing {
		return shared.ErrInvalidState
	}
	if data == nil || data.ReportType() != r.Type {
		return shared.ErrInvalidState
	}
	r.Status = StatusCompleted
	r.Data = data
	r.ErrorMessage = ""
	r.UpdatedAt = time.Now()
	return nil
}

// Fail records the failure message and transitions to error
func (r *Report) Fail(message string) error {
	if r.Status != StatusProcessing {
		return shared.ErrInvalidState
	}
	if message == "" {
		message = "unknown error"
	}
	r.Status = StatusError
	r.ErrorMessage = message
	r.Data = nil
	r.UpdatedAt = time.Now()
	return nil
}

// IsTerminal reports whether the report reached a final state
func (r *Report) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusError
}

// Fingerprint derives the deterministic cache key for this report's
// computation. Filters serialize with a fixed field order, so equal
// filters always produce equal keys.
func (r *Report) Fingerprint() string {
	raw, err := json.Marshal(r.Filters)
	if err != nil {
		// Filters contain only marshalable types; this cannot happen.
		return string(r.Type)
	}
	return string(r.Type) + "|" + string(raw)
}
