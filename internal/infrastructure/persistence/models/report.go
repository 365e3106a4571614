package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/report"
)

// ReportModel is the persistence mapping for report.Report. Filters and
// data persist as JSON documents; Data stays null until the report
// completes.
type ReportModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Type         string    `gorm:"size:32;not null;index"`
	Format       string    `gorm:"size:16;not null"`
	Status       string    `gorm:"size:16;not null;index"`
	Filters      []byte    `gorm:"type:jsonb;not null"`
	Data         []byte    `gorm:"type:jsonb"`
	ErrorMessage *string   `gorm:"type:text"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName overrides the table name
func (ReportModel) TableName() string {
	return "reports"
}

// FromDomain populates the model from a domain report
func (m *ReportModel) FromDomain(r *report.Report) error {
	filters, err := json.Marshal(r.Filters)
	if err != nil {
		return err
	}

	var data []byte
	if r.Data != nil {
		data, err = json.Marshal(r.Data)
		if err != nil {
			return err
		}
	}

	var errorMessage *string
	if r.ErrorMessage != "" {
		msg := r.ErrorMessage
		errorMessage = &msg
	}

	m.ID = r.ID
	m.Name = r.Name
	m.Type = string(r.Type)
	m.Format = string(r.Format)
	m.Status = string(r.Status)
	m.Filters = filters
	m.Data = data
	m.ErrorMessage = errorMessage
	m.CreatedBy = r.CreatedBy
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	return nil
}

// ToDomain converts the model to a domain report
func (m *ReportModel) ToDomain() (*report.Report, error) {
	var filters report.Filters
	if len(m.Filters) > 0 {
		if err := json.Unmarshal(m.Filters, &filters); err != nil {
			return nil, err
		}
	}

	data, err := report.UnmarshalData(report.Type(m.Type), m.Data)
	if err != nil {
		return nil, err
	}

	errorMessage := ""
	if m.ErrorMessage != nil {
		errorMessage = *m.ErrorMessage
	}

	return &report.Report{
		ID:           m.ID,
		Name:         m.Name,
		Type:         report.Type(m.Type),
		Filters:      filters,
		Format:       report.Format(m.Format),
		Status:       report.Status(m.Status),
		Data:         data,
		ErrorMessage: errorMessage,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
