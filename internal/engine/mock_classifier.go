package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Veraticus/petcheck/internal/model"
)

// MockClassifier is a test implementation of the Classifier interface.
// It returns deterministic labels keyed by image filename.
type MockClassifier struct {
	labels map[string]string
	errs   map[string]error
	calls  []MockClassifierCall
	mu     sync.Mutex
}

// MockClassifierCall records details of a classification request.
type MockClassifierCall struct {
	ImagePath string
	Arch      model.Arch
}

// NewMockClassifier creates a mock that answers with labels[filename].
// Unknown filenames are labeled with their pet label followed by ", pet".
func NewMockClassifier(labels map[string]string) *MockClassifier {
	if labels == nil {
		labels = make(map[string]string)
	}
	return &MockClassifier{
		labels: labels,
		errs:   make(map[string]error),
	}
}

// FailOn makes Classify return err for filename.
func (m *MockClassifier) FailOn(filename string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[filename] = err
}

// Classify returns the configured label for the image's filename.
func (m *MockClassifier) Classify(_ context.Context, imagePath string, arch model.Arch) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockClassifierCall{ImagePath: imagePath, Arch: arch})

	name := filepath.Base(imagePath)
	if err, ok := m.errs[name]; ok {
		return "", err
	}
	if label, ok := m.labels[name]; ok {
		return label, nil
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("%s, pet", strings.ReplaceAll(stem, "_", " ")), nil
}

// GetCalls returns all recorded calls for verification in tests.
func (m *MockClassifier) GetCalls() []MockClassifierCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]MockClassifierCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}
