package repository

import (
	"context"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
)

type AssessmentRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Assessment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Assessment, error)
	// ClaimProcessing atomically moves a pending assessment to 'processing'.
	// It returns domain.ErrNotClaimable when the row exists but is no longer
	// pending, which prevents other workers from picking up the same job.
	ClaimProcessing(ctx context.Context, tx Tx, id string) error
}
