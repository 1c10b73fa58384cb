package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrNotClaimable    = errors.New("assessment is not pending")
	ErrJobInFlight     = errors.New("assessment job already in flight")
	ErrInvalidArgument = errors.New("invalid argument")

	// Pipeline stage errors. The processor wraps these with stage detail
	// (fmt.Errorf("%w: ...")) so callers can match the kind with errors.Is.
	ErrVideoDownload   = errors.New("video download failed")
	ErrMediaUpload     = errors.New("media upload failed")
	ErrMediaProcessing = errors.New("media processing failed")
	ErrMediaTimeout    = errors.New("media processing timed out")
	ErrInference       = errors.New("inference request failed")
	ErrVerdictFormat   = errors.New("response not in expected JSON format")
)
