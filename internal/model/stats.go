package model

// ResultStats summarizes a run. Counts and percentages keep the names used in
// reports so the JSON output can be consumed by existing tooling.
type ResultStats struct {
	NImages         int `json:"n_images"`
	NDogsImg        int `json:"n_dogs_img"`
	NNotDogsImg     int `json:"n_notdogs_img"`
	NMatch          int `json:"n_match"`
	NCorrectDogs    int `json:"n_correct_dogs"`
	NCorrectNotDogs int `json:"n_correct_notdogs"`
	NCorrectBreed   int `json:"n_correct_breed"`

	PctMatch          float64 `json:"pct_match"`
	PctCorrectDogs    float64 `json:"pct_correct_dogs"`
	PctCorrectNotDogs float64 `json:"pct_correct_notdogs"`
	PctCorrectBreed   float64 `json:"pct_correct_breed"`
}

// Percentage is a named percentage statistic.
type Percentage struct {
	Name  string
	Value float64
}

// Percentages returns the percentage statistics in report order.
func (s ResultStats) Percentages() []Percentage {
	return []Percentage{
		{Name: "pct_match", Value: s.PctMatch},
		{Name: "pct_correct_dogs", Value: s.PctCorrectDogs},
		{Name: "pct_correct_breed", Value: s.PctCorrectBreed},
		{Name: "pct_correct_notdogs", Value: s.PctCorrectNotDogs},
	}
}

// AllDogAssignmentsCorrect reports whether every image was correctly sorted
// into dog or not-dog.
func (s ResultStats) AllDogAssignmentsCorrect() bool {
	return s.NCorrectDogs+s.NCorrectNotDogs == s.NImages
}

// AllBreedsCorrect reports whether every correctly identified dog also had
// its breed matched.
func (s ResultStats) AllBreedsCorrect() bool {
	return s.NCorrectDogs == s.NCorrectBreed
}
