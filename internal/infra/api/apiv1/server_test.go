//go:build !integration

package apiv1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
	apiv1 "github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/api/apiv1"
)

//
// ---------------- in-memory infra mocks ----------------
//

type memAssessmentRepo struct {
	byID map[string]*model.Assessment

	// optional error hook to exercise the 400 mapping path
	errFind error
}

func newMemAssessmentRepo() *memAssessmentRepo {
	return &memAssessmentRepo{byID: map[string]*model.Assessment{}}
}

func (m *memAssessmentRepo) Save(ctx context.Context, tx repository.Tx, a *model.Assessment) error {
	cp := *a
	m.byID[cp.ID] = &cp
	return nil
}

func (m *memAssessmentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Assessment, error) {
	if m.errFind != nil {
		return nil, m.errFind
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAssessmentRepo) ClaimProcessing(ctx context.Context, tx repository.Tx, id string) error {
	return nil
}

type memResultStore struct {
	byID    map[string]*model.JobResult
	errFind error
}

func newMemResultStore() *memResultStore {
	return &memResultStore{byID: map[string]*model.JobResult{}}
}

func (m *memResultStore) Save(ctx context.Context, res *model.JobResult) error {
	cp := *res
	m.byID[cp.AssessmentID] = &cp
	return nil
}

func (m *memResultStore) Find(ctx context.Context, assessmentID string) (*model.JobResult, error) {
	if m.errFind != nil {
		return nil, m.errFind
	}
	res, ok := m.byID[assessmentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

type fakePublisher struct {
	published  []string
	errPublish error
}

func (p *fakePublisher) PublishAssessment(ctx context.Context, assessmentID string) error {
	if p.errPublish != nil {
		return p.errPublish
	}
	p.published = append(p.published, assessmentID)
	return nil
}

//
// -------------------- test helpers --------------------
//

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func newTestRouter(repo *memAssessmentRepo, results *memResultStore, jobs *fakePublisher) *chi.Mux {
	r := chi.NewRouter()
	srv := apiv1.NewServer(repo, results, jobs, newLogger())
	// routes register absolute paths (/api/v1/...), so mount at root
	apiv1.RegisterAPIV1(r, srv)
	return r
}

func seedApproved(repo *memAssessmentRepo) *model.Assessment {
	a, _ := model.NewAssessment("as-1", "ed-1", "https://cdn.example.com/cut.mp4")
	a.Status = model.AssessmentStatusApproved
	a.AIScore = 0.88
	a.HumanReviewerNotes = "Great color work."
	_ = repo.Save(context.Background(), nil, a)
	return a
}

//
// -------------------- tests --------------------
//

func TestAssessments_Get(t *testing.T) {
	t.Run("existing assessment returns 200 with the record", func(t *testing.T) {
		repo := newMemAssessmentRepo()
		seedApproved(repo)
		r := newTestRouter(repo, newMemResultStore(), &fakePublisher{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/as-1", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("want 200, got %d, body=%s", rec.Code, rec.Body.String())
		}
		var body apiv1.Assessment
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.ID != "as-1" || body.EditorID != "ed-1" {
			t.Errorf("want as-1/ed-1, got %s/%s", body.ID, body.EditorID)
		}
		if body.Status != "approved" || body.AIScore != 0.88 {
			t.Errorf("want approved/0.88, got %s/%f", body.Status, body.AIScore)
		}
		if body.HumanReviewerNotes != "Great color work." {
			t.Errorf("want the reviewer notes, got %q", body.HumanReviewerNotes)
		}
	})

	t.Run("missing assessment returns 404", func(t *testing.T) {
		r := newTestRouter(newMemAssessmentRepo(), newMemResultStore(), &fakePublisher{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/nope", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("want 404, got %d, body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("lookup failure maps to 400", func(t *testing.T) {
		repo := newMemAssessmentRepo()
		repo.errFind = errors.New("connection refused")
		r := newTestRouter(repo, newMemResultStore(), &fakePublisher{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/as-1", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d, body=%s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "connection refused") {
			t.Errorf("want the cause in the body, got %s", rec.Body.String())
		}
	})
}

func TestAssessments_Result(t *testing.T) {
	t.Run("finished job returns 200 with the result", func(t *testing.T) {
		results := newMemResultStore()
		_ = results.Save(context.Background(), &model.JobResult{
			AssessmentID: "as-1", Status: "approved", Score: 0.9,
		})
		r := newTestRouter(newMemAssessmentRepo(), results, &fakePublisher{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/as-1/result", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("want 200, got %d, body=%s", rec.Code, rec.Body.String())
		}
		var body model.JobResult
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != "approved" || body.Score != 0.9 {
			t.Errorf("want approved/0.9, got %s/%f", body.Status, body.Score)
		}
	})

	t.Run("unknown job returns 404", func(t *testing.T) {
		r := newTestRouter(newMemAssessmentRepo(), newMemResultStore(), &fakePublisher{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/nope/result", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("want 404, got %d, body=%s", rec.Code, rec.Body.String())
		}
	})
}

func TestAssessments_Enqueue(t *testing.T) {
	t.Run("existing assessment is queued with 202", func(t *testing.T) {
		repo := newMemAssessmentRepo()
		seedApproved(repo)
		jobs := &fakePublisher{}
		r := newTestRouter(repo, newMemResultStore(), jobs)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/as-1/process", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusAccepted {
			t.Fatalf("want 202, got %d, body=%s", rec.Code, rec.Body.String())
		}
		var body apiv1.EnqueueResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.AssessmentID != "as-1" || !body.Queued {
			t.Errorf("want as-1/queued, got %s/%v", body.AssessmentID, body.Queued)
		}
		if len(jobs.published) != 1 || jobs.published[0] != "as-1" {
			t.Errorf("want one published job for as-1, got %v", jobs.published)
		}
	})

	t.Run("missing assessment returns 404 and does not publish", func(t *testing.T) {
		jobs := &fakePublisher{}
		r := newTestRouter(newMemAssessmentRepo(), newMemResultStore(), jobs)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/nope/process", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("want 404, got %d, body=%s", rec.Code, rec.Body.String())
		}
		if len(jobs.published) != 0 {
			t.Errorf("want no published jobs, got %v", jobs.published)
		}
	})

	t.Run("publish failure returns 500", func(t *testing.T) {
		repo := newMemAssessmentRepo()
		seedApproved(repo)
		jobs := &fakePublisher{errPublish: errors.New("broker down")}
		r := newTestRouter(repo, newMemResultStore(), jobs)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/as-1/process", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("want 500, got %d, body=%s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "failed to enqueue job") {
			t.Errorf("want the enqueue failure in the body, got %s", rec.Body.String())
		}
	})
}
