package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// httpClient calls an inference service that accepts an image path and a
// model name and answers with a label.
type httpClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

type classifyRequest struct {
	ImagePath string `json:"image_path"`
	Model     string `json:"model"`
}

type classifyResponse struct {
	Label string `json:"label"`
	Error string `json:"error,omitempty"`
}

func newHTTPClient(cfg Config) (Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: classifier.endpoint is required for the http backend", common.ErrMissingConfig)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &httpClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Classify posts a single image to the inference service.
func (c *httpClient) Classify(ctx context.Context, imagePath string, arch model.Arch) (string, error) {
	jsonBody, err := json.Marshal(classifyRequest{
		ImagePath: imagePath,
		Model:     arch.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("classifier API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response classifyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if response.Error != "" {
		return "", fmt.Errorf("classifier API error: %s", response.Error)
	}

	return response.Label, nil
}
