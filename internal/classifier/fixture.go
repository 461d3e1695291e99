package classifier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// fixtureClient replays labels recorded from an earlier classifier run. The
// file maps architecture to image filename to label:
//
//	vgg:
//	  Beagle_01141.jpg: beagle
//	  cat_01.jpg: "egyptian cat, cat"
type fixtureClient struct {
	labels map[model.Arch]map[string]string
}

func newFixtureClient(cfg Config) (Client, error) {
	if cfg.Fixture == "" {
		return nil, fmt.Errorf("%w: classifier.fixture is required for the fixture backend", common.ErrMissingConfig)
	}

	data, err := os.ReadFile(cfg.Fixture)
	if err != nil {
		return nil, fmt.Errorf("%w: reading classifier fixture: %w", common.ErrInvalidConfig, err)
	}

	return parseFixture(data)
}

func parseFixture(data []byte) (*fixtureClient, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing classifier fixture: %w", common.ErrInvalidConfig, err)
	}

	labels := make(map[model.Arch]map[string]string, len(raw))
	for name, byFile := range raw {
		arch, err := model.ParseArch(name)
		if err != nil {
			return nil, fmt.Errorf("%w: classifier fixture: %w", common.ErrInvalidConfig, err)
		}
		labels[arch] = byFile
	}

	return &fixtureClient{labels: labels}, nil
}

// Classify looks up the recorded label for the image's filename.
func (c *fixtureClient) Classify(ctx context.Context, imagePath string, arch model.Arch) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(imagePath)
	label, ok := c.labels[arch][name]
	if !ok {
		return "", fmt.Errorf("no recorded %s label for %s", arch, name)
	}

	return label, nil
}
