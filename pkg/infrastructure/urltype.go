package infrastructure

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"
)

// URLTypeProber classifies a URL by its Content-Type header. The HTTP
// client is injected explicitly so callers control timeouts and tests
// can point it at a local server; nothing here touches global state.
type URLTypeProber struct {
	client *http.Client
}

func NewURLTypeProber(client *http.Client) *URLTypeProber {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &URLTypeProber{client: client}
}

// Type issues a HEAD request for the URL and returns its media type
// (e.g. "image/png"). Servers that reject HEAD get one GET retry.
func (p *URLTypeProber) Type(ctx context.Context, rawURL string) (string, error) {
	mediaType, err := p.probe(ctx, http.MethodHead, rawURL)
	if err == nil {
		return mediaType, nil
	}
	return p.probe(ctx, http.MethodGet, rawURL)
}

func (p *URLTypeProber) probe(ctx context.Context, method, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("probe %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", rawURL, err)
	}
	return mediaType, nil
}
