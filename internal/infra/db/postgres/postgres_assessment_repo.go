package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
)

var _ repository.AssessmentRepository = (*PostgresAssessmentRepo)(nil)

type PostgresAssessmentRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAssessmentRepo(pool *pgxpool.Pool) *PostgresAssessmentRepo {
	return &PostgresAssessmentRepo{pool: pool}
}

func (r *PostgresAssessmentRepo) Save(ctx context.Context, tx repository.Tx, a *model.Assessment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.UpdatedAt = time.Now()

	const q = `
INSERT INTO assessments (id, editor_id, video_url, status, ai_score, human_reviewer_notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  status = EXCLUDED.status,
  ai_score = EXCLUDED.ai_score,
  human_reviewer_notes = EXCLUDED.human_reviewer_notes,
  updated_at = EXCLUDED.updated_at;`

	_, err := executor(r.pool, tx).Exec(ctx, q,
		a.ID, a.EditorID, a.VideoURL, string(a.Status), a.AIScore, a.HumanReviewerNotes, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *PostgresAssessmentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Assessment, error) {
	const q = `
SELECT id, editor_id, video_url, status, ai_score, human_reviewer_notes, created_at, updated_at
  FROM assessments WHERE id=$1;`

	row := executor(r.pool, tx).QueryRow(ctx, q, id)
	var a model.Assessment
	var statusStr string
	if err := row.Scan(&a.ID, &a.EditorID, &a.VideoURL, &statusStr, &a.AIScore, &a.HumanReviewerNotes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	a.Status = model.AssessmentStatus(statusStr)
	return &a, nil
}

// ClaimProcessing is the duplicate-work guard: the conditional UPDATE only
// wins when the row is still pending, so two workers racing on the same
// assessment cannot both run the pipeline.
func (r *PostgresAssessmentRepo) ClaimProcessing(ctx context.Context, tx repository.Tx, id string) error {
	const q = `
UPDATE assessments
   SET status='processing', updated_at=now()
 WHERE id=$1 AND status='pending';`

	tag, err := executor(r.pool, tx).Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, ferr := r.FindByID(ctx, tx, id); ferr != nil {
			return ferr
		}
		return domain.ErrNotClaimable
	}
	return nil
}
