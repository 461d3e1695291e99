// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/petcheck/internal/classifier"
	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings for one evaluation run.
type Config struct {
	ImageDir        string
	DogFile         string
	Archs           []model.Arch
	Workers         int
	Format          string
	IncorrectDogs   bool
	IncorrectBreeds bool
	NoProgress      bool
	Classifier      classifier.Config
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("images.dir", "pet_images/")
	v.SetDefault("images.dogfile", "dognames.txt")
	v.SetDefault("run.arch", []string{string(model.ArchVGG)})
	v.SetDefault("run.workers", 1)
	v.SetDefault("classifier.backend", classifier.BackendExec)
	v.SetDefault("classifier.timeout", 60*time.Second)
	v.SetDefault("report.format", FormatText)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the run configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	archs, err := parseArchs(v.GetStringSlice("run.arch"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ImageDir:        ExpandPath(v.GetString("images.dir")),
		DogFile:         ExpandPath(v.GetString("images.dogfile")),
		Archs:           archs,
		Workers:         v.GetInt("run.workers"),
		Format:          strings.ToLower(v.GetString("report.format")),
		IncorrectDogs:   v.GetBool("report.incorrect_dogs"),
		IncorrectBreeds: v.GetBool("report.incorrect_breeds"),
		NoProgress:      v.GetBool("report.no_progress"),
		Classifier: classifier.Config{
			Backend:  strings.ToLower(v.GetString("classifier.backend")),
			Command:  v.GetStringSlice("classifier.command"),
			Endpoint: v.GetString("classifier.endpoint"),
			APIKey:   v.GetString("classifier.api_key"),
			Fixture:  ExpandPath(v.GetString("classifier.fixture")),
			Timeout:  v.GetDuration("classifier.timeout"),

			RateLimit: v.GetInt("classifier.rate_limit"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseArchs accepts repeated values as well as comma-separated lists.
func parseArchs(values []string) ([]model.Arch, error) {
	var archs []model.Arch
	seen := make(map[model.Arch]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			arch, err := model.ParseArch(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
			}
			if !seen[arch] {
				seen[arch] = true
				archs = append(archs, arch)
			}
		}
	}
	return archs, nil
}

// Validate checks that the configuration describes a runnable evaluation.
func (c *Config) Validate() error {
	if c.ImageDir == "" {
		return fmt.Errorf("%w: image directory", common.ErrMissingConfig)
	}
	if c.DogFile == "" {
		return fmt.Errorf("%w: dog name file", common.ErrMissingConfig)
	}
	if len(c.Archs) == 0 {
		return fmt.Errorf("%w: at least one model architecture", common.ErrMissingConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", common.ErrInvalidConfig, c.Workers)
	}

	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: invalid report format %q (use text or json)", common.ErrInvalidConfig, c.Format)
	}

	switch c.Classifier.Backend {
	case classifier.BackendExec:
		if len(c.Classifier.Command) == 0 {
			return fmt.Errorf("%w: classifier.command is required for the exec backend", common.ErrMissingConfig)
		}
	case classifier.BackendHTTP:
		if c.Classifier.Endpoint == "" {
			return fmt.Errorf("%w: classifier.endpoint is required for the http backend", common.ErrMissingConfig)
		}
	case classifier.BackendFixture:
		if c.Classifier.Fixture == "" {
			return fmt.Errorf("%w: classifier.fixture is required for the fixture backend", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported classifier backend %q (use exec, http or fixture)", common.ErrInvalidConfig, c.Classifier.Backend)
	}

	if c.Classifier.RateLimit < 0 {
		return fmt.Errorf("%w: classifier.rate_limit must not be negative", common.ErrInvalidConfig)
	}
	if c.Classifier.Timeout < 0 {
		return fmt.Errorf("%w: classifier.timeout must not be negative", common.ErrInvalidConfig)
	}

	return nil
}
