// Package model defines the core domain models used throughout the application.
package model

import "sort"

// PetLabel is the ground-truth name derived from an image filename: lowercase,
// alphabetic words separated by single spaces. The empty label is valid.
type PetLabel string

// String returns the label text.
func (l PetLabel) String() string {
	return string(l)
}

// Record is the per-image classification outcome. Pipeline stages return
// modified copies rather than mutating a shared collection.
type Record struct {
	Filename        string   `json:"filename"`
	PetLabel        PetLabel `json:"pet_label"`
	ClassifierLabel string   `json:"classifier_label"`
	LabelMatch      bool     `json:"label_match"`
	PetIsDog        bool     `json:"pet_is_dog"`
	ClassifierIsDog bool     `json:"classifier_is_dog"`
}

// NewRecord creates a record holding only the ground-truth label.
func NewRecord(filename string, label PetLabel) Record {
	return Record{
		Filename: filename,
		PetLabel: label,
	}
}

// WithClassifierLabel returns a copy carrying the classifier output and match flag.
func (r Record) WithClassifierLabel(label string, match bool) Record {
	r.ClassifierLabel = label
	r.LabelMatch = match
	return r
}

// WithDogFlags returns a copy carrying the dog/not-dog flags.
func (r Record) WithDogFlags(petIsDog, classifierIsDog bool) Record {
	r.PetIsDog = petIsDog
	r.ClassifierIsDog = classifierIsDog
	return r
}

// IsDogMismatch reports whether exactly one of the image and the classifier
// considers the subject a dog.
func (r Record) IsDogMismatch() bool {
	return r.PetIsDog != r.ClassifierIsDog
}

// IsBreedMiss reports whether a dog was recognized as a dog but the breed
// label did not match.
func (r Record) IsBreedMiss() bool {
	return r.PetIsDog && r.ClassifierIsDog && !r.LabelMatch
}

// Records is a run's collection of records ordered by filename.
type Records []Record

// Sorted returns a copy ordered by filename.
func (rs Records) Sorted() Records {
	out := make(Records, len(rs))
	copy(out, rs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Filename < out[j].Filename
	})
	return out
}

// ByFilename returns the records keyed by filename.
func (rs Records) ByFilename() map[string]Record {
	m := make(map[string]Record, len(rs))
	for _, r := range rs {
		m[r.Filename] = r
	}
	return m
}

// Filter returns the records for which keep returns true.
func (rs Records) Filter(keep func(Record) bool) Records {
	var out Records
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
