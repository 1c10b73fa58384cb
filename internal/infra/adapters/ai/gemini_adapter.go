// File: internal/infra/adapters/ai/gemini_adapter.go
package ai

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/adapter"
	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/infra/metrics"
)

const providerName = "gemini"

var _ adapter.MediaAIAdapter = (*GeminiAdapter)(nil)

type GeminiAdapter struct {
	client *genai.Client
	model  string
	maxOut int
}

// NewGeminiAdapter creates a Gemini adapter using the official SDK.
func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, model string, maxOut int) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, model: model, maxOut: maxOut}, nil
}

// UploadFile pushes the local video into the Gemini file store. The returned
// handle must be polled until the file leaves PROCESSING.
func (g *GeminiAdapter) UploadFile(ctx context.Context, localPath string) (*adapter.MediaFile, error) {
	start := time.Now()
	f, err := g.client.Files.UploadFromPath(ctx, localPath, &genai.UploadFileConfig{
		MIMEType: "video/mp4",
	})
	metrics.ObserveMediaUpload(providerName, int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return nil, err
	}
	return toMediaFile(f), nil
}

func (g *GeminiAdapter) GetFile(ctx context.Context, handle string) (*adapter.MediaFile, error) {
	f, err := g.client.Files.Get(ctx, handle, nil)
	if err != nil {
		return nil, err
	}
	mf := toMediaFile(f)
	metrics.IncMediaFilePoll(providerName, string(mf.State))
	return mf, nil
}

// GenerateText sends the prompt plus a reference to the uploaded video and
// returns only the model's text reply.
func (g *GeminiAdapter) GenerateText(ctx context.Context, prompt string, file *adapter.MediaFile) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(file.URI, file.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	var cfg *genai.GenerateContentConfig
	if g.maxOut > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: int32(g.maxOut)}
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	metrics.ObserveAICall(providerName, g.model, int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func toMediaFile(f *genai.File) *adapter.MediaFile {
	return &adapter.MediaFile{
		Handle:   f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    mapState(f.State),
	}
}

func mapState(s genai.FileState) adapter.MediaState {
	switch s {
	case genai.FileStateProcessing:
		return adapter.MediaStateProcessing
	case genai.FileStateActive:
		return adapter.MediaStateActive
	case genai.FileStateFailed:
		return adapter.MediaStateFailed
	default:
		return adapter.MediaStateUnknown
	}
}
