package domain

// AgeRange is an inclusive age band.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Span returns the width of the band.
func (r AgeRange) Span() int { return r.Max - r.Min }

// Overlap returns how many years two bands share.
func (r AgeRange) Overlap(o AgeRange) int {
	lo, hi := max(r.Min, o.Min), min(r.Max, o.Max)
	if hi < lo {
		return 0
	}
	return hi - lo
}

// DefaultTargetAge is assumed when a campaign carries no age targeting.
var DefaultTargetAge = AgeRange{Min: 25, Max: 45}

// Targeting describes who should see a campaign
type Targeting struct {
	AgeRange  *AgeRange `json:"age_range,omitempty"`
	Genders   []string  `json:"genders,omitempty"`
	Income    string    `json:"income,omitempty"`
	Locations []string  `json:"locations"`
	Interests []string  `json:"interests"`
}

// Age returns the targeted age band or DefaultTargetAge.
func (t Targeting) Age() AgeRange {
	if t.AgeRange == nil {
		return DefaultTargetAge
	}
	return *t.AgeRange
}
