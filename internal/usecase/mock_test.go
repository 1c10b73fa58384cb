//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/adapter"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
)

// =============================
// Repositories
// =============================

// ---- Mock AssessmentRepository ----

type MockAssessmentRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Assessment

	// Saved records every write that went through the default Save, in
	// order, so tests can assert on write counts and contents.
	Saved []model.Assessment

	SaveFunc            func(ctx context.Context, tx repository.Tx, a *model.Assessment) error
	FindByIDFunc        func(ctx context.Context, tx repository.Tx, id string) (*model.Assessment, error)
	ClaimProcessingFunc func(ctx context.Context, tx repository.Tx, id string) error
}

var _ repository.AssessmentRepository = (*MockAssessmentRepo)(nil)

func NewMockAssessmentRepo() *MockAssessmentRepo {
	return &MockAssessmentRepo{byID: map[string]*model.Assessment{}}
}

// Seed inserts without touching the Saved trace.
func (r *MockAssessmentRepo) Seed(a *model.Assessment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.byID[cp.ID] = &cp
}

func (r *MockAssessmentRepo) Save(ctx context.Context, tx repository.Tx, a *model.Assessment) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, a)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	r.byID[cp.ID] = &cp
	r.Saved = append(r.Saved, cp)
	return nil
}

func (r *MockAssessmentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Assessment, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: assessment %s", domain.ErrNotFound, id)
}

func (r *MockAssessmentRepo) ClaimProcessing(ctx context.Context, tx repository.Tx, id string) error {
	if r.ClaimProcessingFunc != nil {
		return r.ClaimProcessingFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: assessment %s", domain.ErrNotFound, id)
	}
	if a.Status != model.AssessmentStatusPending {
		return fmt.Errorf("%w: status %s", domain.ErrNotClaimable, a.Status)
	}
	a.Status = model.AssessmentStatusProcessing
	return nil
}

// ---- Mock EditorRepository ----

type MockEditorRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Editor

	Saved []model.Editor

	SaveFunc     func(ctx context.Context, tx repository.Tx, e *model.Editor) error
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Editor, error)
}

var _ repository.EditorRepository = (*MockEditorRepo)(nil)

func NewMockEditorRepo() *MockEditorRepo {
	return &MockEditorRepo{byID: map[string]*model.Editor{}}
}

func (r *MockEditorRepo) Seed(e *model.Editor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.byID[cp.ID] = &cp
}

func (r *MockEditorRepo) Save(ctx context.Context, tx repository.Tx, e *model.Editor) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, e)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.byID[cp.ID] = &cp
	r.Saved = append(r.Saved, cp)
	return nil
}

func (r *MockEditorRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Editor, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, fmt.Errorf("%w: editor %s", domain.ErrNotFound, id)
}

// =============================
// Adapters
// =============================

// ---- Mock VideoSourceAdapter ----

// MockVideoSource writes real temp files by default so the pipeline's
// cleanup can be observed with os.Stat.
type MockVideoSource struct {
	mu      sync.Mutex
	Created []string

	FetchToTempFunc func(ctx context.Context, url string) (string, error)
}

var _ adapter.VideoSourceAdapter = (*MockVideoSource)(nil)

func NewMockVideoSource() *MockVideoSource {
	return &MockVideoSource{}
}

func (v *MockVideoSource) FetchToTemp(ctx context.Context, url string) (string, error) {
	if v.FetchToTempFunc != nil {
		return v.FetchToTempFunc(ctx, url)
	}
	f, err := os.CreateTemp("", "assessment-test-*.mp4")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString("not really a video"); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	v.mu.Lock()
	v.Created = append(v.Created, f.Name())
	v.mu.Unlock()
	return f.Name(), nil
}

// ---- Mock MediaAIAdapter ----

type MockMediaAI struct {
	mu sync.Mutex

	// UploadState is the state of the file returned by the default
	// UploadFile. Zero value means ACTIVE.
	UploadState adapter.MediaState
	// PollStates are consumed one per GetFile call; when exhausted the
	// default GetFile reports ACTIVE.
	PollStates []adapter.MediaState
	// Reply is returned by the default GenerateText.
	Reply string

	UploadFileFunc   func(ctx context.Context, localPath string) (*adapter.MediaFile, error)
	GetFileFunc      func(ctx context.Context, handle string) (*adapter.MediaFile, error)
	GenerateTextFunc func(ctx context.Context, prompt string, file *adapter.MediaFile) (string, error)

	Calls struct {
		Uploads   int
		Polls     int
		Generates int
		Prompts   []string
	}
}

var _ adapter.MediaAIAdapter = (*MockMediaAI)(nil)

func NewMockMediaAI() *MockMediaAI {
	return &MockMediaAI{Reply: `{"score": 0.85, "critique": "Excellent pacing and rhythm."}`}
}

func (m *MockMediaAI) UploadFile(ctx context.Context, localPath string) (*adapter.MediaFile, error) {
	m.mu.Lock()
	m.Calls.Uploads++
	m.mu.Unlock()
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, localPath)
	}
	state := m.UploadState
	if state == "" {
		state = adapter.MediaStateActive
	}
	return &adapter.MediaFile{
		Handle:   "files/mock-upload",
		URI:      "https://provider.example/files/mock-upload",
		MIMEType: "video/mp4",
		State:    state,
	}, nil
}

func (m *MockMediaAI) GetFile(ctx context.Context, handle string) (*adapter.MediaFile, error) {
	m.mu.Lock()
	m.Calls.Polls++
	m.mu.Unlock()
	if m.GetFileFunc != nil {
		return m.GetFileFunc(ctx, handle)
	}
	m.mu.Lock()
	state := adapter.MediaStateActive
	if len(m.PollStates) > 0 {
		state = m.PollStates[0]
		m.PollStates = m.PollStates[1:]
	}
	m.mu.Unlock()
	return &adapter.MediaFile{
		Handle:   handle,
		URI:      "https://provider.example/" + handle,
		MIMEType: "video/mp4",
		State:    state,
	}, nil
}

func (m *MockMediaAI) GenerateText(ctx context.Context, prompt string, file *adapter.MediaFile) (string, error) {
	m.mu.Lock()
	m.Calls.Generates++
	m.Calls.Prompts = append(m.Calls.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt, file)
	}
	return m.Reply, nil
}

// =============================
// Infra helpers for tests
// =============================

// ---- Mock TransactionManager ----

type MockTxManager struct {
	Calls      int
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs the function immediately without a real transaction. Assign
// WithTxFunc to exercise commit failures.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.Calls++
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
