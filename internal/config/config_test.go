package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/petcheck/internal/classifier"
	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

func newViper(t *testing.T, yamlDoc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	if yamlDoc != "" {
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(yamlDoc)))
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(t, "classifier:\n  command: [python3, classify.py]\n")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "pet_images/", cfg.ImageDir)
	assert.Equal(t, "dognames.txt", cfg.DogFile)
	assert.Equal(t, []model.Arch{model.ArchVGG}, cfg.Archs)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, classifier.BackendExec, cfg.Classifier.Backend)
	assert.Equal(t, []string{"python3", "classify.py"}, cfg.Classifier.Command)
	assert.Equal(t, 60*time.Second, cfg.Classifier.Timeout)
	assert.False(t, cfg.IncorrectDogs)
	assert.False(t, cfg.IncorrectBreeds)
}

func TestLoad_FromFile(t *testing.T) {
	v := newViper(t, `
images:
  dir: /data/pets
  dogfile: /data/dognames.txt
run:
  arch: [resnet, "alexnet,vgg", resnet]
  workers: 4
classifier:
  backend: HTTP
  endpoint: http://localhost:8080/classify
  timeout: 5s
  rate_limit: 120
report:
  format: json
  incorrect_dogs: true
  incorrect_breeds: true
`)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/data/pets", cfg.ImageDir)
	assert.Equal(t, []model.Arch{model.ArchResNet, model.ArchAlexNet, model.ArchVGG}, cfg.Archs)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, classifier.BackendHTTP, cfg.Classifier.Backend)
	assert.Equal(t, "http://localhost:8080/classify", cfg.Classifier.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 120, cfg.Classifier.RateLimit)
	assert.True(t, cfg.IncorrectDogs)
	assert.True(t, cfg.IncorrectBreeds)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "unknown arch",
			doc:     "run:\n  arch: [inception]\nclassifier:\n  command: [x]\n",
			wantErr: model.ErrUnknownArch,
		},
		{
			name:    "no arch",
			doc:     "run:\n  arch: []\nclassifier:\n  command: [x]\n",
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "zero workers",
			doc:     "run:\n  workers: 0\nclassifier:\n  command: [x]\n",
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "bad format",
			doc:     "report:\n  format: xml\nclassifier:\n  command: [x]\n",
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "exec without command",
			doc:     "",
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "http without endpoint",
			doc:     "classifier:\n  backend: http\n",
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "fixture without file",
			doc:     "classifier:\n  backend: fixture\n",
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "negative rate limit",
			doc:     "classifier:\n  command: [x]\n  rate_limit: -1\n",
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "unknown backend",
			doc:     "classifier:\n  backend: grpc\n",
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(t, tt.doc))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PETCHECK_TEST_DIR", "/tmp/pets")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/pet_images", want: filepath.Join(home, "pet_images")},
		{input: "$PETCHECK_TEST_DIR/dognames.txt", want: "/tmp/pets/dognames.txt"},
		{input: "relative/dir", want: "relative/dir"},
		{input: "~other/dir", want: "~other/dir"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[len(paths)-1])
}
