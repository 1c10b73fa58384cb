// File: internal/domain/model/editor.go
package model

import (
	"fmt"
	"time"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
)

// Editor is a domain entity representing a freelance video editor on the
// platform. BadgeLevel reflects the quality of the latest approved work.
type Editor struct {
	ID         string
	BadgeLevel int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewEditor creates an editor with no badge yet.
func NewEditor(id string) (*Editor, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: editor id must not be empty", domain.ErrInvalidArgument)
	}
	now := time.Now()
	return &Editor{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}

// BadgeLevelForScore maps an approved AI score to a badge level.
func BadgeLevelForScore(score float64) int {
	switch {
	case score > 0.92:
		return 3
	case score > 0.82:
		return 2
	default:
		return 1
	}
}

// AwardBadge sets the badge level for an approved score. Levels are
// recomputed from scratch on every approval, not accumulated.
func (e *Editor) AwardBadge(score float64) {
	e.BadgeLevel = BadgeLevelForScore(score)
	e.UpdatedAt = time.Now()
}
