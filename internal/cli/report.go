package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/petcheck/internal/engine"
	"github.com/Veraticus/petcheck/internal/model"
)

// Reporter renders evaluation results for the terminal.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a reporter writing to writer (default: stdout).
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Summary prints the counts and percentages for one architecture.
func (r *Reporter) Summary(arch model.Arch, stats model.ResultStats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%20s: %d\n", "N Images", stats.NImages)
	fmt.Fprintf(&b, "%20s: %d\n", "N Dog Images", stats.NDogsImg)
	fmt.Fprintf(&b, "%20s: %d\n", "N Not-Dog Images", stats.NNotDogsImg)
	b.WriteString("\n")
	for _, pct := range stats.Percentages() {
		fmt.Fprintf(&b, "%20s: %s\n", pct.Name, r.stylePercent(pct.Value))
	}

	title := fmt.Sprintf("%s Results Summary for CNN Model Architecture %s", ChartIcon, strings.ToUpper(arch.String()))
	_, err := fmt.Fprintln(r.writer, RenderBox(title, strings.TrimRight(b.String(), "\n")))
	return err
}

func (r *Reporter) stylePercent(v float64) string {
	text := fmt.Sprintf("%5.1f", v)
	switch {
	case v >= 90:
		return SuccessStyle.Render(text)
	case v < 50:
		return WarningStyle.Render(text)
	default:
		return text
	}
}

// IncorrectDogs lists images where the image and the classifier disagree on
// dog versus not-dog. Nothing is printed when every assignment is correct.
func (r *Reporter) IncorrectDogs(records model.Records, stats model.ResultStats) error {
	if stats.AllDogAssignmentsCorrect() {
		return nil
	}
	return r.recordTable("Incorrect Dog/NOT Dog Assignments", records.Filter(model.Record.IsDogMismatch))
}

// IncorrectBreeds lists dog images recognized as dogs whose breed did not
// match. Nothing is printed when every recognized dog has the right breed.
func (r *Reporter) IncorrectBreeds(records model.Records, stats model.ResultStats) error {
	if stats.AllBreedsCorrect() {
		return nil
	}
	return r.recordTable("Incorrect Dog Breed Assignments", records.Filter(model.Record.IsBreedMiss))
}

func (r *Reporter) recordTable(title string, records model.Records) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records.Sorted() {
		rows = append(rows, []string{rec.Filename, rec.PetLabel.String(), rec.ClassifierLabel})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("File", "Real", "Classifier").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	_, err := fmt.Fprintf(r.writer, "\n%s\n%s\n", FormatWarning(title+":"), t.Render())
	return err
}

// Elapsed prints the total runtime in seconds and as h:m:s.
func (r *Reporter) Elapsed(d time.Duration) error {
	total := int(d.Seconds())
	hms := fmt.Sprintf("%d:%d:%d", total/3600, (total%3600)/60, total%60)
	_, err := fmt.Fprintf(r.writer, "\n** Total Elapsed Runtime: %.3f seconds (%s)\n", d.Seconds(), hms)
	return err
}

// Report prints a complete text report for one result.
func (r *Reporter) Report(result *engine.Result, incorrectDogs, incorrectBreeds bool) error {
	if err := r.Summary(result.Arch, result.Stats); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if incorrectDogs {
		if err := r.IncorrectDogs(result.Records, result.Stats); err != nil {
			return fmt.Errorf("failed to write incorrect dogs: %w", err)
		}
	}
	if incorrectBreeds {
		if err := r.IncorrectBreeds(result.Records, result.Stats); err != nil {
			return fmt.Errorf("failed to write incorrect breeds: %w", err)
		}
	}
	return nil
}

// JSON writes the results as a single indented JSON document.
func (r *Reporter) JSON(results []*engine.Result, elapsed time.Duration) error {
	doc := struct {
		Results        []*engine.Result `json:"results"`
		ElapsedSeconds float64          `json:"elapsed_seconds"`
	}{
		Results:        results,
		ElapsedSeconds: elapsed.Seconds(),
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
