package dataset

import (
	"github.com/gradstat/placement-backend/internal/model"
)

// Filter applies the four-way conjunctive predicate and returns a new
// view. All four predicates are ANDed; ranges are inclusive. The result
// may be empty — that is a valid state, not an error.
//
// Filter assumes the selection has already been normalized (empty year
// or branch sets substituted with the full domain); pass raw selections
// through Repository.Normalize first.
func Filter(ds model.Dataset, sel model.FilterSelection) model.Dataset {
	years := make(map[int]bool, len(sel.Years))
	for _, y := range sel.Years {
		years[y] = true
	}
	branches := make(map[string]bool, len(sel.Branches))
	for _, b := range sel.Branches {
		branches[b] = true
	}

	out := make(model.Dataset, 0, len(ds))
	for _, r := range ds {
		if !years[r.Year] || !branches[r.Branch] {
			continue
		}
		if !sel.PackageRange.Contains(r.AvgPackage) {
			continue
		}
		if !sel.PlacementPctRange.Contains(r.PlacementPct) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ActiveFilterCount returns how many of the four filters deviate from
// the full domain of the dataset. Used by the presentation layer's
// "N active filters" badge.
func ActiveFilterCount(ds model.Dataset, sel model.FilterSelection) int {
	active := 0
	if !sameIntSet(sel.Years, ds.Years()) {
		active++
	}
	if !sameStringSet(sel.Branches, ds.Branches()) {
		active++
	}
	pkgMin, pkgMax := ds.PackageBounds()
	if sel.PackageRange != (model.Range{Min: pkgMin, Max: pkgMax}) {
		active++
	}
	if sel.PlacementPctRange != (model.Range{Min: 0, Max: 100}) {
		active++
	}
	return active
}

func sameIntSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}
