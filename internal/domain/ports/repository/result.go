package repository

import (
	"context"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
)

// ResultStore keeps the outcome of finished jobs so callers can poll for
// them without touching the assessments table.
type ResultStore interface {
	Save(ctx context.Context, res *model.JobResult) error
	Find(ctx context.Context, assessmentID string) (*model.JobResult, error)
}
