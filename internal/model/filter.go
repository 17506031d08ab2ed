package model

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterSelection is the four-dimensional predicate applied to the
// dataset. Empty Years/Branches mean "select all" and are substituted
// with the full domain before filtering, never resolved to an empty
// result. Ranges are inclusive on both ends.
type FilterSelection struct {
	Years             []int    `json:"years"`
	Branches          []string `json:"branches"`
	PackageRange      Range    `json:"package_range"`
	PlacementPctRange Range    `json:"placement_pct_range"`
}

// FilterOptions describes the full filter domain of the loaded dataset,
// exposed so the presentation layer can render its controls.
type FilterOptions struct {
	Years             []int    `json:"years"` // descending, newest first
	Branches          []string `json:"branches"`
	PackageRange      Range    `json:"package_range"`
	PlacementPctRange Range    `json:"placement_pct_range"`
}
