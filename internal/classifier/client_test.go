package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "unknown backend", cfg: Config{Backend: "onnx"}, wantErr: common.ErrInvalidConfig},
		{name: "exec without command", cfg: Config{Backend: BackendExec}, wantErr: common.ErrMissingConfig},
		{name: "exec with missing binary", cfg: Config{Backend: BackendExec, Command: []string{"definitely-not-a-classifier-binary"}}, wantErr: common.ErrInvalidConfig},
		{name: "http without endpoint", cfg: Config{Backend: BackendHTTP}, wantErr: common.ErrMissingConfig},
		{name: "fixture without file", cfg: Config{Backend: BackendFixture}, wantErr: common.ErrMissingConfig},
		{name: "fixture with missing file", cfg: Config{Backend: BackendFixture, Fixture: "/nonexistent/labels.yaml"}, wantErr: common.ErrInvalidConfig},
		{name: "negative rate limit", cfg: Config{Backend: BackendHTTP, Endpoint: "http://localhost", RateLimit: -5}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClient_RateLimited(t *testing.T) {
	c, err := NewClient(Config{Backend: BackendHTTP, Endpoint: "http://localhost", RateLimit: 30})
	require.NoError(t, err)

	limited, ok := c.(*limitedClient)
	require.True(t, ok)
	assert.IsType(t, &httpClient{}, limited.next)

	c, err = NewClient(Config{Backend: BackendHTTP, Endpoint: "http://localhost"})
	require.NoError(t, err)
	assert.IsType(t, &httpClient{}, c)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "egyptian cat, cat", Normalize("  Egyptian Cat, cat\n"))
	assert.Equal(t, "", Normalize(" \t"))
}

func TestHTTPClient_Classify(t *testing.T) {
	var got classifyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(classifyResponse{Label: "Beagle"})
	}))
	defer server.Close()

	client, err := NewClient(Config{Backend: BackendHTTP, Endpoint: server.URL, APIKey: "secret"})
	require.NoError(t, err)

	label, err := client.Classify(context.Background(), "pet_images/Beagle_01141.jpg", model.ArchResNet)
	require.NoError(t, err)

	assert.Equal(t, "Beagle", label)
	assert.Equal(t, classifyRequest{ImagePath: "pet_images/Beagle_01141.jpg", Model: "resnet"}, got)
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("model not loaded"))
			},
			wantMsg: "status 500",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			wantMsg: "failed to parse response",
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(classifyResponse{Error: "unreadable image"})
			},
			wantMsg: "unreadable image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := NewClient(Config{Backend: BackendHTTP, Endpoint: server.URL, Timeout: 5 * time.Second})
			require.NoError(t, err)

			_, err = client.Classify(context.Background(), "x.jpg", model.ArchVGG)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFixtureClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	fixture := `vgg:
  Beagle_01141.jpg: beagle
  cat_01.jpg: "egyptian cat, cat"
resnet:
  Beagle_01141.jpg: "walker hound, walker foxhound"
`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	client, err := NewClient(Config{Backend: BackendFixture, Fixture: path})
	require.NoError(t, err)

	ctx := context.Background()

	label, err := client.Classify(ctx, "pet_images/cat_01.jpg", model.ArchVGG)
	require.NoError(t, err)
	assert.Equal(t, "egyptian cat, cat", label)

	label, err = client.Classify(ctx, "pet_images/Beagle_01141.jpg", model.ArchResNet)
	require.NoError(t, err)
	assert.Equal(t, "walker hound, walker foxhound", label)

	_, err = client.Classify(ctx, "pet_images/cat_01.jpg", model.ArchAlexNet)
	assert.ErrorContains(t, err, "no recorded alexnet label")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = client.Classify(cancelled, "pet_images/cat_01.jpg", model.ArchVGG)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFixture_Errors(t *testing.T) {
	_, err := parseFixture([]byte("inception:\n  a.jpg: cat\n"))
	require.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.ErrorIs(t, err, model.ErrUnknownArch)

	_, err = parseFixture([]byte("vgg: [not, a, map]"))
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecClient_Classify(t *testing.T) {
	requireShell(t)

	client, err := NewClient(Config{
		Backend: BackendExec,
		Command: []string{"sh", "-c", `printf '%s|%s\n' "$1" "$2"`, "classify"},
	})
	require.NoError(t, err)

	out, err := client.Classify(context.Background(), "pet_images/cat_01.jpg", model.ArchAlexNet)
	require.NoError(t, err)
	assert.Equal(t, "pet_images/cat_01.jpg|alexnet", Normalize(out))
}

func TestExecClient_Failure(t *testing.T) {
	requireShell(t)

	client, err := NewClient(Config{
		Backend: BackendExec,
		Command: []string{"sh", "-c", `echo "cannot identify image file" >&2; exit 3`, "classify"},
	})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), "broken.jpg", model.ArchVGG)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot identify image file")
}

func TestExecClient_Timeout(t *testing.T) {
	requireShell(t)

	client, err := NewClient(Config{
		Backend: BackendExec,
		Command: []string{"sh", "-c", "exec sleep 5", "classify"},
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Classify(context.Background(), "slow.jpg", model.ArchVGG)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}
