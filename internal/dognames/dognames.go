// Package dognames loads the reference dog-name vocabulary and uses it to
// flag ground-truth and classifier labels as dog or not-dog.
package dognames

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/model"
)

// Set is an immutable set of canonical dog names.
type Set struct {
	names      map[string]struct{}
	duplicates []string
}

// NewSet builds a set from names, collapsing repeats.
func NewSet(names ...string) *Set {
	s := &Set{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.add(strings.TrimSpace(name))
	}
	return s
}

func (s *Set) add(name string) {
	if _, exists := s.names[name]; exists {
		slog.Warn("Duplicate dog name", "name", name)
		s.duplicates = append(s.duplicates, name)
		return
	}
	s.names[name] = struct{}{}
}

// Parse reads one dog name per line from r. Lines are trimmed and blank lines
// skipped. Repeated names are logged and collapsed; they never fail the read.
func Parse(r io.Reader) (*Set, error) {
	s := &Set{names: make(map[string]struct{})}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDogFile, err)
	}

	return s, nil
}

// Load reads the dog-name file at path.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrDogFile, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close dog name file", "path", path, "error", closeErr)
		}
	}()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	slog.Debug("Loaded dog names", "path", path, "count", s.Len(), "duplicates", len(s.duplicates))
	return s, nil
}

// Contains reports whether name is exactly one of the dog names.
func (s *Set) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of distinct names.
func (s *Set) Len() int {
	return len(s.names)
}

// Duplicates returns the repeated names seen while loading, in input order.
func (s *Set) Duplicates() []string {
	out := make([]string, len(s.duplicates))
	copy(out, s.duplicates)
	return out
}

// Adjust returns a copy of r with its dog flags set. The classifier label must
// equal a dog name verbatim, so a synonym list only counts as a dog when that
// exact list is in the set.
func Adjust(s *Set, r model.Record) model.Record {
	return r.WithDogFlags(s.Contains(string(r.PetLabel)), s.Contains(r.ClassifierLabel))
}

// AdjustAll applies Adjust to every record and returns the new records.
func AdjustAll(s *Set, records model.Records) model.Records {
	out := make(model.Records, len(records))
	for i, r := range records {
		out[i] = Adjust(s, r)
	}
	return out
}
