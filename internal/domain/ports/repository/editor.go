package repository

import (
	"context"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
)

type EditorRepository interface {
	Save(ctx context.Context, tx Tx, e *model.Editor) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Editor, error)
}
