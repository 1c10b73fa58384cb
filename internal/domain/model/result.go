// File: internal/domain/model/result.go
package model

// ResultStatusNotFound is reported when a job references an assessment
// that does not exist (or could not be loaded).
const ResultStatusNotFound = "not_found"

// JobResult is the summary a processing job hands back to its caller.
// Status carries the assessment's final status, or "not_found" when the
// record could not be loaded. Error is set only on pipeline failures.
type JobResult struct {
	AssessmentID string  `json:"assessment_id"`
	Status       string  `json:"status"`
	Score        float64 `json:"score"`
	Error        string  `json:"error,omitempty"`
}
