// Package petlabel derives ground-truth pet labels from image filenames.
package petlabel

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// Extract builds the pet label for filename. The name is lowercased and split
// on underscores; only purely alphabetic tokens are kept. A filename with no
// such token yields the empty label.
func Extract(filename string) model.PetLabel {
	var words []string
	for _, token := range strings.Split(strings.ToLower(filename), "_") {
		if isAlpha(token) {
			words = append(words, token)
		}
	}
	return model.PetLabel(strings.TrimSpace(strings.Join(words, " ")))
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// FromDir lists the image files in dir and returns one label-only record per
// file, ordered by filename. Subdirectories and hidden files are ignored.
func FromDir(dir string) (model.Records, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrImageDir, dir, err)
	}

	records := make(model.Records, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		records = append(records, model.NewRecord(entry.Name(), Extract(entry.Name())))
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w in %s", common.ErrNoImages, dir)
	}

	return records, nil
}
