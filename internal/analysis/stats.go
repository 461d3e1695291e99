// Package analysis reduces classification records into run statistics.
package analysis

import "github.com/Veraticus/petcheck/internal/model"

// Calculate computes the run statistics for records. It is pure: calling it
// twice on the same records yields identical results. Percentages with a zero
// denominator are reported as 0, which also covers runs without dog images.
func Calculate(records model.Records) model.ResultStats {
	var s model.ResultStats

	s.NImages = len(records)
	if s.NImages == 0 {
		return s
	}

	for _, r := range records {
		if r.LabelMatch {
			s.NMatch++
		}
		if r.LabelMatch && r.PetIsDog && r.ClassifierIsDog {
			s.NCorrectBreed++
		}

		if r.PetIsDog {
			s.NDogsImg++
			if r.ClassifierIsDog {
				s.NCorrectDogs++
			}
		} else if !r.ClassifierIsDog {
			s.NCorrectNotDogs++
		}
	}

	s.NNotDogsImg = s.NImages - s.NDogsImg

	s.PctMatch = percent(s.NMatch, s.NImages)
	s.PctCorrectDogs = percent(s.NCorrectDogs, s.NDogsImg)
	s.PctCorrectBreed = percent(s.NCorrectBreed, s.NDogsImg)
	s.PctCorrectNotDogs = percent(s.NCorrectNotDogs, s.NNotDogsImg)

	return s
}

func percent(count, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return 100.0 * float64(count) / float64(total)
}
