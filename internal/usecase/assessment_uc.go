// File: internal/usecase/assessment_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/model"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/adapter"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/repository"
)

// Compile-time check
var _ AssessmentUseCase = (*assessmentUC)(nil)

const (
	defaultPollInterval = 5 * time.Second
	defaultPollTimeout  = 10 * time.Minute
)

// reviewPrompt is the fixed rubric sent to the reviewer model with every
// submission. The response contract (bare JSON object with "score" and
// "critique") is what ParseVerdict expects.
const reviewPrompt = `You are a senior, expert video editor and a hiring manager for an elite creative agency.
You are reviewing a portfolio submission from a freelance video editor.
Analyze the provided video based on the following professional criteria:
1.  **Pacing and Rhythm:** Is the editing well-paced? Does it match the mood of the content?
2.  **Continuity:** Are there any jarring jump cuts or continuity errors?
3.  **Color Grading:** Is the color consistent and does it enhance the story?
4.  **Audio Quality:** Is the audio clean, well-mixed, and free of obvious errors?
5.  **Storytelling:** Does the edit effectively tell a clear and engaging story?

Based on your analysis, provide a single, overall score for this editor's skill on a scale of 0.0 to 1.0, where 0.75 is the minimum passing grade for a professional.
Then, provide a brief, one-sentence critique of the video's strongest or weakest point.

Format your response as a JSON object with two keys: "score" (a float) and "critique" (a string).
Example: {"score": 0.85, "critique": "Excellent pacing and rhythm, but the audio mix could be cleaner."}`

type AssessmentUseCase interface {
	// Process runs the full review pipeline for one assessment and always
	// returns a result summary, even when the pipeline fails. Errors are
	// folded into the assessment record and the summary rather than
	// propagated, so a caller never retries a job that already wrote its
	// outcome.
	Process(ctx context.Context, assessmentID string) model.JobResult
}

type assessmentUC struct {
	assessments  repository.AssessmentRepository
	editors      repository.EditorRepository
	videos       adapter.VideoSourceAdapter
	ai           adapter.MediaAIAdapter
	tm           repository.TransactionManager
	pollInterval time.Duration
	pollTimeout  time.Duration
	log          *zerolog.Logger
}

func NewAssessmentUseCase(
	assessments repository.AssessmentRepository,
	editors repository.EditorRepository,
	videos adapter.VideoSourceAdapter,
	ai adapter.MediaAIAdapter,
	tm repository.TransactionManager,
	pollInterval time.Duration,
	pollTimeout time.Duration,
	logger *zerolog.Logger,
) *assessmentUC {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	return &assessmentUC{
		assessments:  assessments,
		editors:      editors,
		videos:       videos,
		ai:           ai,
		tm:           tm,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		log:          logger,
	}
}

func (u *assessmentUC) Process(ctx context.Context, assessmentID string) model.JobResult {
	log := u.log.With().Str("assessment_id", assessmentID).Logger()
	result := model.JobResult{AssessmentID: assessmentID, Status: model.ResultStatusNotFound}

	a, err := u.assessments.FindByID(ctx, nil, assessmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Msg("assessment not found")
		} else {
			log.Error().Err(err).Msg("failed to load assessment")
		}
		return result
	}

	if err := u.assessments.ClaimProcessing(ctx, nil, a.ID); err != nil {
		if errors.Is(err, domain.ErrNotClaimable) {
			// Another worker (or a previous run) already owns this one.
			if current, ferr := u.assessments.FindByID(ctx, nil, a.ID); ferr == nil {
				a = current
			}
			log.Warn().Str("status", string(a.Status)).Msg("assessment not pending, skipping")
			result.Status = string(a.Status)
			result.Score = a.AIScore
			return result
		}
		return u.fail(&log, a, err, 0)
	}
	a.Status = model.AssessmentStatusProcessing
	log.Info().Msg("starting AI analysis")

	verdict, err := u.review(ctx, &log, a)
	if err != nil {
		return u.fail(&log, a, err, 0)
	}

	if err := u.commitVerdict(ctx, &log, a, verdict); err != nil {
		return u.fail(&log, a, err, verdict.Score)
	}

	log.Info().
		Float64("score", verdict.Score).
		Str("status", string(a.Status)).
		Msg("finished AI analysis")
	result.Status = string(a.Status)
	result.Score = verdict.Score
	return result
}

// review runs the media pipeline: download, upload, wait for the provider to
// finish ingesting, generate, parse. Each stage failure is tagged with its
// domain error kind so callers and tests can tell the stages apart.
func (u *assessmentUC) review(ctx context.Context, log *zerolog.Logger, a *model.Assessment) (model.Verdict, error) {
	file, err := u.uploadSubmission(ctx, log, a.VideoURL)
	if err != nil {
		return model.Verdict{}, err
	}

	file, err = u.waitForActive(ctx, log, file)
	if err != nil {
		return model.Verdict{}, err
	}

	log.Debug().Str("file", file.Handle).Msg("sending prompt for analysis")
	raw, err := u.ai.GenerateText(ctx, reviewPrompt, file)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("%w: %v", domain.ErrInference, err)
	}
	log.Debug().Str("raw_response", raw).Msg("received model reply")

	return model.ParseVerdict(raw)
}

// uploadSubmission fetches the video to a temp file and hands it to the
// provider. The temp file is removed as soon as the upload call returns,
// success or not.
func (u *assessmentUC) uploadSubmission(ctx context.Context, log *zerolog.Logger, videoURL string) (*adapter.MediaFile, error) {
	log.Debug().Str("video_url", videoURL).Msg("downloading video")
	localPath, err := u.videos.FetchToTemp(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVideoDownload, err)
	}
	defer func() {
		if rmErr := os.Remove(localPath); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", localPath).Msg("could not remove temp video")
		}
	}()

	log.Debug().Str("path", localPath).Msg("uploading video to provider")
	file, err := u.ai.UploadFile(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
	}
	return file, nil
}

// waitForActive polls the provider until the uploaded file leaves the
// PROCESSING state. The wait is bounded by pollTimeout; a file that is still
// processing past the budget fails with ErrMediaTimeout instead of holding
// the worker forever.
func (u *assessmentUC) waitForActive(ctx context.Context, log *zerolog.Logger, file *adapter.MediaFile) (*adapter.MediaFile, error) {
	deadline := time.Now().Add(u.pollTimeout)
	for file.State == adapter.MediaStateProcessing {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: file %s still processing after %s", domain.ErrMediaTimeout, file.Handle, u.pollTimeout)
		}
		log.Debug().Str("file", file.Handle).Msg("file still processing, waiting")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrMediaProcessing, ctx.Err())
		case <-time.After(u.pollInterval):
		}
		refreshed, err := u.ai.GetFile(ctx, file.Handle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMediaProcessing, err)
		}
		file = refreshed
	}
	if file.State != adapter.MediaStateActive {
		return nil, fmt.Errorf("%w: final state %s", domain.ErrMediaProcessing, file.State)
	}
	return file, nil
}

// commitVerdict writes the verdict and, on approval, the editor's badge in
// one transaction so the two rows cannot diverge.
func (u *assessmentUC) commitVerdict(ctx context.Context, log *zerolog.Logger, a *model.Assessment, verdict model.Verdict) error {
	a.ApplyVerdict(verdict)
	return u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.assessments.Save(ctx, tx, a); err != nil {
			return err
		}
		if a.Status != model.AssessmentStatusApproved {
			return nil
		}
		editor, err := u.editors.FindByID(ctx, tx, a.EditorID)
		if err != nil {
			// Approval stands even when the editor row is missing or
			// unreadable; the badge is the only casualty.
			log.Warn().Err(err).Str("editor_id", a.EditorID).Msg("editor lookup failed, skipping badge update")
			return nil
		}
		editor.AwardBadge(a.AIScore)
		if err := u.editors.Save(ctx, tx, editor); err != nil {
			return err
		}
		log.Info().Str("editor_id", editor.ID).Int("badge_level", editor.BadgeLevel).Msg("editor badge updated")
		return nil
	})
}

// fail records a pipeline failure on the assessment itself. The write uses a
// background context so a canceled job context cannot strand the row in
// 'processing'.
func (u *assessmentUC) fail(log *zerolog.Logger, a *model.Assessment, cause error, score float64) model.JobResult {
	log.Error().Err(cause).Msg("assessment processing failed")
	a.RejectWithError(cause)
	if err := u.assessments.Save(context.Background(), nil, a); err != nil {
		log.Error().Err(err).Msg("failed to record assessment failure")
	}
	return model.JobResult{
		AssessmentID: a.ID,
		Status:       string(model.AssessmentStatusRejected),
		Score:        score,
		Error:        cause.Error(),
	}
}
