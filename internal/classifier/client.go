package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// Client defines the interface for classifier backends.
type Client interface {
	Classify(ctx context.Context, imagePath string, arch model.Arch) (string, error)
}

// Backend names.
const (
	BackendExec    = "exec"
	BackendHTTP    = "http"
	BackendFixture = "fixture"
)

// Config holds configuration for the classifier backends.
type Config struct {
	Backend  string
	Command  []string
	Endpoint string
	APIKey   string
	Fixture  string
	Timeout  time.Duration

	// RateLimit caps requests per minute. Zero means unlimited.
	RateLimit int
}

// NewClient creates a classifier client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("%w: classifier.rate_limit must not be negative", common.ErrInvalidConfig)
	}

	var (
		client Client
		err    error
	)
	switch strings.ToLower(cfg.Backend) {
	case BackendExec:
		client, err = newExecClient(cfg)
	case BackendHTTP:
		client, err = newHTTPClient(cfg)
	case BackendFixture:
		client, err = newFixtureClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported classifier backend: %s", common.ErrInvalidConfig, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = &limitedClient{next: client, limiter: newRateLimiter(cfg.RateLimit)}
	}
	return client, nil
}

// Normalize lowercases and trims raw classifier output.
func Normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
