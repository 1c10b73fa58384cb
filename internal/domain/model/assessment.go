// File: internal/domain/model/assessment.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
)

// AssessmentStatus tracks a submission through the review pipeline.
type AssessmentStatus string

const (
	AssessmentStatusPending    AssessmentStatus = "pending"
	AssessmentStatusProcessing AssessmentStatus = "processing"
	AssessmentStatusApproved   AssessmentStatus = "approved"
	AssessmentStatusRejected   AssessmentStatus = "rejected"
)

// PassingScore is the minimum AI score an editor needs for approval.
const PassingScore = 0.75

// Assessment is a domain entity representing one portfolio video submitted
// by an editor for automated review.
type Assessment struct {
	ID                 string
	EditorID           string
	VideoURL           string
	Status             AssessmentStatus
	AIScore            float64
	HumanReviewerNotes string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAssessment creates a pending assessment for an editor's submission.
func NewAssessment(id, editorID, videoURL string) (*Assessment, error) {
	if editorID == "" {
		return nil, fmt.Errorf("%w: editor id must not be empty", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(videoURL) == "" {
		return nil, fmt.Errorf("%w: video url must not be empty", domain.ErrInvalidArgument)
	}
	now := time.Now()
	return &Assessment{
		ID:        id,
		EditorID:  editorID,
		VideoURL:  videoURL,
		Status:    AssessmentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Terminal reports whether the assessment has reached a final verdict.
func (a *Assessment) Terminal() bool {
	return a.Status == AssessmentStatusApproved || a.Status == AssessmentStatusRejected
}

// ApplyVerdict records the AI verdict. Score and critique are always written
// together; the status follows from the passing threshold.
func (a *Assessment) ApplyVerdict(v Verdict) {
	a.AIScore = v.Score
	a.HumanReviewerNotes = v.Critique
	if v.Score >= PassingScore {
		a.Status = AssessmentStatusApproved
	} else {
		a.Status = AssessmentStatusRejected
	}
	a.UpdatedAt = time.Now()
}

// RejectWithError marks the assessment rejected after a pipeline failure.
// The score is reset so a failed run never leaves a stale verdict behind.
func (a *Assessment) RejectWithError(err error) {
	a.AIScore = 0
	a.HumanReviewerNotes = "An error occurred during AI processing: " + err.Error()
	a.Status = AssessmentStatusRejected
	a.UpdatedAt = time.Now()
}
