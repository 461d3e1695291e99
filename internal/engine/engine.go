// Package engine runs an evaluation: it labels the images in a directory,
// classifies each one, and reduces the results into run statistics.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/petcheck/internal/analysis"
	"github.com/Veraticus/petcheck/internal/classifier"
	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/dognames"
	"github.com/Veraticus/petcheck/internal/model"
	"github.com/Veraticus/petcheck/internal/pattern"
	"github.com/Veraticus/petcheck/internal/petlabel"
)

// Engine orchestrates the evaluation of a classifier against labeled images.
type Engine struct {
	classifier Classifier
	dogs       *dognames.Set
	logger     *slog.Logger
	onProgress ProgressFunc
	workers    int
	progressMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many images are classified concurrently (default 1).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithProgress registers a callback invoked after each image.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.onProgress = fn
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Result is the outcome of evaluating one architecture.
type Result struct {
	RunID   string            `json:"run_id"`
	Arch    model.Arch        `json:"arch"`
	Records model.Records     `json:"records"`
	Stats   model.ResultStats `json:"stats"`
	Elapsed time.Duration     `json:"elapsed_ns"`
}

// New creates an engine that classifies with c and flags dogs using dogs.
func New(c Classifier, dogs *dognames.Set, opts ...Option) *Engine {
	e := &Engine{
		classifier: c,
		dogs:       dogs,
		logger:     slog.Default(),
		workers:    1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Labels returns the label-only records for the images in dir.
func (e *Engine) Labels(dir string) (model.Records, error) {
	return petlabel.FromDir(dir)
}

// Run evaluates every image in dir with the given architecture. A classifier
// failure aborts the run; no partial result is returned.
func (e *Engine) Run(ctx context.Context, dir string, arch model.Arch) (*Result, error) {
	records, err := e.Labels(dir)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, dir, records, arch)
}

// Evaluate classifies the label-only records from dir, flags dogs and
// computes the run statistics.
func (e *Engine) Evaluate(ctx context.Context, dir string, records model.Records, arch model.Arch) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID, "arch", arch)

	logger.Info("Classifying images", "dir", dir, "count", len(records), "workers", e.workers)

	matched, err := e.Classify(ctx, dir, records, arch, logger)
	if err != nil {
		return nil, err
	}

	adjusted := dognames.AdjustAll(e.dogs, matched)
	stats := analysis.Calculate(adjusted)

	logger.Info("Evaluation complete",
		"images", stats.NImages,
		"matches", stats.NMatch,
		"dog_images", stats.NDogsImg)

	return &Result{
		RunID:   runID,
		Arch:    arch,
		Records: adjusted,
		Stats:   stats,
		Elapsed: time.Since(start),
	}, nil
}

// Classify sends each record's image to the classifier and returns new
// records carrying the normalized classifier label and match flag. Each
// record is written by exactly one goroutine, so output order matches input.
func (e *Engine) Classify(ctx context.Context, dir string, records model.Records, arch model.Arch, logger *slog.Logger) (model.Records, error) {
	if logger == nil {
		logger = e.logger
	}

	out := make(model.Records, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, r := range records {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			raw, err := e.classifier.Classify(gctx, filepath.Join(dir, r.Filename), arch)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", common.ErrClassificationFailed, r.Filename, err)
			}

			out[i] = pattern.MatchRecord(r, classifier.Normalize(raw))

			logger.Debug("Classified image",
				"file", r.Filename,
				"pet_label", r.PetLabel,
				"classifier_label", out[i].ClassifierLabel,
				"match", out[i].LabelMatch)

			e.progress(out[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *Engine) progress(r model.Record) {
	if e.onProgress == nil {
		return
	}
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	e.onProgress(r)
}
