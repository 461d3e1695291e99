package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/petcheck/internal/classifier"
	"github.com/Veraticus/petcheck/internal/cli"
	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/config"
	"github.com/Veraticus/petcheck/internal/dognames"
	"github.com/Veraticus/petcheck/internal/engine"
	"github.com/Veraticus/petcheck/internal/petlabel"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Classify pet images and report accuracy",
		Long: `Classify every image in a directory and compare the classifier's answer with
the label taken from the filename (Boston_terrier_02259.jpg -> "boston terrier").

Results are summarized per model architecture: how many labels matched, how
many dogs and not-dogs were recognized as such, and how many dog breeds were
identified correctly.

Examples:
  petcheck check --dir pet_images/ --arch vgg --command "python3 classify.py"
  petcheck check --arch resnet,alexnet,vgg --backend fixture --fixture labels.yaml
  petcheck check --backend http --endpoint http://localhost:8080/classify --format json`,
		RunE: runCheck,
	}

	// Flags
	cmd.Flags().String("dir", "pet_images/", "Directory containing the pet images")
	cmd.Flags().StringSlice("arch", []string{"vgg"}, "CNN model architecture(s): resnet, alexnet, vgg")
	cmd.Flags().String("dogfile", "dognames.txt", "Text file with one dog name per line")
	cmd.Flags().IntP("workers", "w", 1, "Images classified concurrently")
	cmd.Flags().String("backend", classifier.BackendExec, "Classifier backend: exec, http, fixture")
	cmd.Flags().String("command", "", "Classifier command for the exec backend (image path and arch are appended)")
	cmd.Flags().String("endpoint", "", "Classifier URL for the http backend")
	cmd.Flags().String("fixture", "", "YAML file of recorded labels for the fixture backend")
	cmd.Flags().Duration("timeout", 60*time.Second, "Per-image classifier timeout")
	cmd.Flags().Int("rate-limit", 0, "Maximum classifier requests per minute (0 = unlimited)")
	cmd.Flags().String("format", config.FormatText, "Report format: text, json")
	cmd.Flags().Bool("incorrect-dogs", false, "List images misclassified as dog or not-dog")
	cmd.Flags().Bool("incorrect-breeds", false, "List dog images with the wrong breed")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("images.dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("images.dogfile", cmd.Flags().Lookup("dogfile"))
	_ = viper.BindPFlag("run.arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("run.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("classifier.backend", cmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("classifier.command", cmd.Flags().Lookup("command"))
	_ = viper.BindPFlag("classifier.endpoint", cmd.Flags().Lookup("endpoint"))
	_ = viper.BindPFlag("classifier.fixture", cmd.Flags().Lookup("fixture"))
	_ = viper.BindPFlag("classifier.timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("classifier.rate_limit", cmd.Flags().Lookup("rate-limit"))
	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("report.incorrect_dogs", cmd.Flags().Lookup("incorrect-dogs"))
	_ = viper.BindPFlag("report.incorrect_breeds", cmd.Flags().Lookup("incorrect-breeds"))
	_ = viper.BindPFlag("report.no_progress", cmd.Flags().Lookup("no-progress"))

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return common.NewUserError("invalid configuration", err)
	}

	dogs, err := dognames.Load(cfg.DogFile)
	if err != nil {
		return common.NewUserError("failed to load dog names", err)
	}
	if dups := dogs.Duplicates(); len(dups) > 0 {
		slog.Warn("Dog name file contains duplicates", "count", len(dups))
	}

	client, err := classifier.NewClient(cfg.Classifier)
	if err != nil {
		return common.NewUserError("failed to create classifier", err)
	}

	records, err := petlabel.FromDir(cfg.ImageDir)
	if err != nil {
		return common.NewUserError("failed to list images", err)
	}

	slog.Info("Starting evaluation",
		"images", len(records),
		"dog_names", dogs.Len(),
		"archs", cfg.Archs,
		"backend", cfg.Classifier.Backend)

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context())
	defer interrupts.Stop()

	showProgress := !cfg.NoProgress && cfg.Format == config.FormatText

	results := make([]*engine.Result, 0, len(cfg.Archs))
	for _, arch := range cfg.Archs {
		opts := []engine.Option{engine.WithWorkers(cfg.Workers)}

		var progress *cli.Progress
		if showProgress {
			progress = cli.NewProgress(cmd.ErrOrStderr(), len(records), arch)
			opts = append(opts, engine.WithProgress(progress.Add))
		}

		result, err := engine.New(client, dogs, opts...).Evaluate(ctx, cfg.ImageDir, records, arch)
		if err != nil {
			common.LogError(err, "Evaluation failed", common.Fields{
				"arch":    arch,
				"backend": cfg.Classifier.Backend,
			})
			if interrupts.WasInterrupted() {
				return fmt.Errorf("evaluation interrupted: %w", err)
			}
			return fmt.Errorf("evaluation with %s failed: %w", arch, err)
		}
		if progress != nil {
			progress.Finish()
		}

		results = append(results, result)
	}

	reporter := cli.NewReporter(cmd.OutOrStdout())

	if cfg.Format == config.FormatJSON {
		return reporter.JSON(results, time.Since(start))
	}

	for _, result := range results {
		if err := reporter.Report(result, cfg.IncorrectDogs, cfg.IncorrectBreeds); err != nil {
			return err
		}
	}
	return reporter.Elapsed(time.Since(start))
}
