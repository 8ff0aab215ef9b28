package ipfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Config struct {
	// APIURL of an IPFS node's HTTP API (for example http://127.0.0.1:5001).
	APIURL string `yaml:"api_url"`

	TimeoutInMs int64 `yaml:"timeout_in_ms"`
}

const (
	addPath        = "/api/v0/add"
	addressScheme  = "ipfs://"
	defaultTimeout = 120 * time.Second
)

// Uploader pins blobs on an IPFS node and returns ipfs:// content addresses.
type Uploader struct {
	apiURL     string
	httpClient *http.Client
}

func NewUploader(cfg Config) *Uploader {
	timeout := defaultTimeout
	if cfg.TimeoutInMs > 0 {
		timeout = time.Duration(cfg.TimeoutInMs) * time.Millisecond
	}

	return &Uploader{
		apiURL: cfg.APIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upload streams the blob to the node's add endpoint. size is advisory; the
// node hashes whatever arrives.
func (u *Uploader) Upload(ctx context.Context, body io.Reader, _ int64, name string) (string, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(err)

			return
		}
		if _, err := io.Copy(part, body); err != nil {
			pw.CloseWithError(err)

			return
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.apiURL+addPath, pr)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ipfs error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result addResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Hash == "" {
		return "", fmt.Errorf("ipfs returned no hash for %s", name)
	}

	return addressScheme + result.Hash, nil
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}
