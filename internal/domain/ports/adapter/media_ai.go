package adapter

import "context"

// MediaState mirrors the provider-side lifecycle of an uploaded file.
type MediaState string

const (
	MediaStateProcessing MediaState = "PROCESSING"
	MediaStateActive     MediaState = "ACTIVE"
	MediaStateFailed     MediaState = "FAILED"
	MediaStateUnknown    MediaState = "UNKNOWN"
)

// MediaFile is the provider's handle for an uploaded video.
type MediaFile struct {
	Handle   string // provider resource name, used to poll status
	URI      string // content reference passed alongside prompts
	MIMEType string
	State    MediaState
}

// Ready reports whether the file can be referenced in a generation call.
func (f *MediaFile) Ready() bool {
	return f != nil && f.State == MediaStateActive
}

// MediaAIAdapter is the port for the multimodal inference provider.
type MediaAIAdapter interface {
	// UploadFile pushes a local video to the provider's file store. The
	// returned file usually starts out in the PROCESSING state.
	UploadFile(ctx context.Context, localPath string) (*MediaFile, error)

	// GetFile refreshes the state of a previously uploaded file.
	GetFile(ctx context.Context, handle string) (*MediaFile, error)

	// GenerateText runs a prompt against an ACTIVE file and returns only
	// the model's text reply.
	GenerateText(ctx context.Context, prompt string, file *MediaFile) (string, error)
}
