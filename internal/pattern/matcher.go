// Package pattern matches classifier output against ground-truth pet labels.
package pattern

import (
	"strings"

	"github.com/Veraticus/petcheck/internal/model"
)

// Match reports whether label occurs in classifierLabel as a whole word or
// phrase. Only the first occurrence is considered: it must start the string
// or follow a space, and end the string or precede a space or comma. The
// empty label never matches.
func Match(label model.PetLabel, classifierLabel string) bool {
	pet := string(label)
	if pet == "" {
		return false
	}

	idx := strings.Index(classifierLabel, pet)
	if idx < 0 {
		return false
	}

	end := idx + len(pet)
	if idx == 0 && end == len(classifierLabel) {
		return true
	}

	return leftBoundary(classifierLabel, idx) && rightBoundary(classifierLabel, end)
}

func leftBoundary(s string, idx int) bool {
	return idx == 0 || s[idx-1] == ' '
}

func rightBoundary(s string, end int) bool {
	return end == len(s) || s[end] == ' ' || s[end] == ','
}

// MatchRecord returns a copy of r with the classifier label and match flag set.
func MatchRecord(r model.Record, classifierLabel string) model.Record {
	return r.WithClassifierLabel(classifierLabel, Match(r.PetLabel, classifierLabel))
}
