package engine

import (
	"context"

	"github.com/Veraticus/petcheck/internal/model"
)

// Classifier defines the contract for the external image classifier.
type Classifier interface {
	Classify(ctx context.Context, imagePath string, arch model.Arch) (string, error)
}

// ProgressFunc is called once per image after it has been classified and
// matched. It may be called from several goroutines, one call at a time.
type ProgressFunc func(record model.Record)
