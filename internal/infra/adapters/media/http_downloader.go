// File: internal/infra/adapters/media/http_downloader.go
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rakshitwebdev1-sketch/ryvx-backendworker/internal/domain/ports/adapter"
)

var _ adapter.VideoSourceAdapter = (*HTTPDownloader)(nil)

// HTTPDownloader fetches submission videos over HTTP(S).
type HTTPDownloader struct {
	client *http.Client
}

func NewHTTPDownloader(timeout time.Duration) *HTTPDownloader {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &HTTPDownloader{client: &http.Client{Timeout: timeout}}
}

// FetchToTemp streams the video into a fresh *.mp4 temp file so large
// submissions never sit in memory. The caller owns the file.
func (d *HTTPDownloader) FetchToTemp(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %s fetching video", resp.Status)
	}

	tmp, err := os.CreateTemp("", "assessment-*.mp4")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
