package user

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxAvatarBytes caps how much image data gets embedded in a user record.
const maxAvatarBytes = 1 << 20

// AvatarFetcher downloads a provider avatar and packages it for embedding.
type AvatarFetcher interface {
	Fetch(ctx context.Context, url, filename string) (*Avatar, error)
}

type HTTPAvatarFetcher struct {
	client *http.Client
}

func NewHTTPAvatarFetcher(client *http.Client) *HTTPAvatarFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPAvatarFetcher{client: client}
}

func (f *HTTPAvatarFetcher) Fetch(ctx context.Context, url, filename string) (*Avatar, error) {
	if url == "" {
		return nil, fmt.Errorf("empty avatar url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("avatar fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &Avatar{
		Filename:    filename,
		ContentType: contentType,
		Base64:      base64.StdEncoding.EncodeToString(body),
		CreatedAt:   time.Now(),
	}, nil
}
