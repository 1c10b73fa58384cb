// File: internal/infra/api/apiv1/server.go
package apiv1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
)

// JobPublisher is the slice of the queue publisher the API needs.
type JobPublisher interface {
	PublishAssessment(ctx context.Context, assessmentID string) error
}

// Server exposes the small management surface: inspect an assessment,
// enqueue its review job, fetch the job outcome.
type Server struct {
	assessments repository.AssessmentRepository
	results     repository.ResultStore
	jobs        JobPublisher
	log         *zerolog.Logger
}

func NewServer(
	assessments repository.AssessmentRepository,
	results repository.ResultStore,
	jobs JobPublisher,
	logger *zerolog.Logger,
) *Server {
	return &Server{assessments: assessments, results: results, jobs: jobs, log: logger}
}

// Assessment is the wire shape of one assessment record.
type Assessment struct {
	ID                 string    `json:"id"`
	EditorID           string    `json:"editor_id"`
	VideoURL           string    `json:"video_url"`
	Status             string    `json:"status"`
	AIScore            float64   `json:"ai_score"`
	HumanReviewerNotes string    `json:"human_reviewer_notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EnqueueResponse acknowledges a dispatched job.
type EnqueueResponse struct {
	AssessmentID string `json:"assessment_id"`
	Queued       bool   `json:"queued"`
}

// RegisterAPIV1 mounts all v1 routes. Paths are absolute, so mount at root.
func RegisterAPIV1(r chi.Router, s *Server) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/assessments/{id}", s.handleGetAssessment)
		r.Get("/assessments/{id}/result", s.handleGetResult)
		r.Post("/assessments/{id}/process", s.handleEnqueue)
	})
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.assessments.FindByID(r.Context(), nil, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWireAssessment(a))
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.results.Find(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.assessments.FindByID(r.Context(), nil, id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.jobs.PublishAssessment(r.Context(), id); err != nil {
		s.log.Error().Err(err).Str("assessment_id", id).Msg("failed to enqueue job")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to enqueue job"})
		return
	}
	writeJSON(w, http.StatusAccepted, EnqueueResponse{AssessmentID: id, Queued: true})
}

func toWireAssessment(a *model.Assessment) Assessment {
	return Assessment{
		ID:                 a.ID,
		EditorID:           a.EditorID,
		VideoURL:           a.VideoURL,
		Status:             string(a.Status),
		AIScore:            a.AIScore,
		HumanReviewerNotes: a.HumanReviewerNotes,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}
