package model

import (
	"math"
	"sort"
)

// CompanySlot is one of up to three recruiter/count pairs on a record.
// A slot is present only when Valid is true.
type CompanySlot struct {
	Company  string `json:"company"`
	Students int    `json:"students"`
	Valid    bool   `json:"-"`
}

// PlacementRecord is one row of the placement dataset: the outcome of a
// single academic year for a single branch.
//
// Float fields use NaN as the missing-value marker (unparseable source
// cells coerce to NaN instead of failing the load). Count fields coerce
// to zero. placement_percentage is a stored column, not derived from
// placed/total, and is never reconciled against them.
type PlacementRecord struct {
	Year             int     `json:"year"`
	Branch           string  `json:"branch"`
	TotalStudents    int     `json:"total_students"`
	PlacedStudents   int     `json:"placed_students"`
	UnplacedStudents int     `json:"unplaced_students"`
	PlacementPct     float64 `json:"placement_percentage"`
	HighestPackage   float64 `json:"highest_package_LPA"`
	MedianPackage    float64 `json:"median_package_LPA"`
	LowestPackage    float64 `json:"lowest_package_LPA"`
	AvgPackage       float64 `json:"avg_package_LPA"`

	Companies [3]CompanySlot `json:"top_companies"`
	Roles     [3]string      `json:"top_job_roles"`

	InternshipConversionPct float64 `json:"internship_conversion_rate_percent"`
}

// Dataset is an ordered, immutable sequence of placement records, sorted
// by (year asc, branch asc) after loading. Filtering produces new
// slices; the loaded dataset itself is never mutated.
type Dataset []PlacementRecord

// Empty reports whether the dataset has no rows.
func (ds Dataset) Empty() bool { return len(ds) == 0 }

// Years returns the distinct years present, ascending.
func (ds Dataset) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range ds {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Branches returns the distinct branches present, in first-occurrence
// order of the sorted dataset.
func (ds Dataset) Branches() []string {
	seen := make(map[string]bool)
	var branches []string
	for _, r := range ds {
		if !seen[r.Branch] {
			seen[r.Branch] = true
			branches = append(branches, r.Branch)
		}
	}
	return branches
}

// PackageBounds returns the min and max avg_package_LPA over rows with a
// present value. Returns (0, 0) when no row carries one.
func (ds Dataset) PackageBounds() (min, max float64) {
	first := true
	for _, r := range ds {
		if math.IsNaN(r.AvgPackage) {
			continue
		}
		if first {
			min, max = r.AvgPackage, r.AvgPackage
			first = false
			continue
		}
		if r.AvgPackage < min {
			min = r.AvgPackage
		}
		if r.AvgPackage > max {
			max = r.AvgPackage
		}
	}
	return min, max
}
