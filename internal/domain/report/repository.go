package report

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for report records
type Repository interface {
	// Save persists a newly created report
	Save(ctx context.Context, r *Report) error

	// Update persists a status transition (status, data, error message)
	Update(ctx context.Context, r *Report) error

	// FindByID returns the report or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)

	// FindByOwner returns the owner's reports newest first with the total count
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]Report, int64, error)
}
