package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
)

var _ repository.EditorRepository = (*PostgresEditorRepo)(nil)

type PostgresEditorRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresEditorRepo(pool *pgxpool.Pool) *PostgresEditorRepo {
	return &PostgresEditorRepo{pool: pool}
}

func (r *PostgresEditorRepo) Save(ctx context.Context, tx repository.Tx, e *model.Editor) error {
	e.UpdatedAt = time.Now()

	const q = `
INSERT INTO editors (id, badge_level, created_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
  badge_level = EXCLUDED.badge_level,
  updated_at = EXCLUDED.updated_at;`

	_, err := executor(r.pool, tx).Exec(ctx, q, e.ID, e.BadgeLevel, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *PostgresEditorRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Editor, error) {
	const q = `
SELECT id, badge_level, created_at, updated_at
  FROM editors WHERE id=$1;`

	row := executor(r.pool, tx).QueryRow(ctx, q, id)
	var e model.Editor
	if err := row.Scan(&e.ID, &e.BadgeLevel, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
