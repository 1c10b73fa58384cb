package adapter

import "context"

// VideoSourceAdapter materializes a remote submission video on local disk
// so it can be handed to the inference provider.
type VideoSourceAdapter interface {
	// FetchToTemp streams the resource at url into a fresh temporary file
	// and returns its path. The caller owns the file and must remove it.
	FetchToTemp(ctx context.Context, url string) (string, error)
}
