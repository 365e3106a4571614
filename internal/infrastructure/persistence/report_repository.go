package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailops/backend/internal/domain/report"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Save persists a newly created report
func (r *GormReportRepository) Save(ctx context.Context, rep *report.Report) error {
	var model models.ReportModel
	if err := model.FromDomain(rep); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists a status transition
func (r *GormReportRepository) Update(ctx context.Context, rep *report.Report) error {
	var model models.ReportModel
	if err := model.FromDomain(rep); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.ReportModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":        model.Status,
			"data":          model.Data,
			"error_message": model.ErrorMessage,
			"updated_at":    model.UpdatedAt,
		}).Error
}

// FindByID returns the report or shared.ErrNotFound
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	var model models.ReportModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByOwner returns the owner's reports newest first with the total count
func (r *GormReportRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]report.Report, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReportModel{}).
		Where("created_by = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReportModel
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	reports := make([]report.Report, 0, len(rows))
	for i := range rows {
		rep, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, *rep)
	}

	return reports, total, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
