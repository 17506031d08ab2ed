package handler

import (
	"github.com/gradstat/placement-backend/internal/model"
)

// filterRequest is the shared request body for every recompute
// endpoint. Omitted years/branches mean "select all"; omitted ranges
// default to the dataset's full span. Present ranges are validated
// min ≤ max by the struct-level rule registered in the validator.
type filterRequest struct {
	Years             []int        `json:"years"`
	Branches          []string     `json:"branches"`
	PackageRange      *model.Range `json:"package_range"`
	PlacementPctRange *model.Range `json:"placement_pct_range"`
}

// selection converts the request into the core FilterSelection,
// leaving zero values for the repository's normalization to fill.
func (r filterRequest) selection() model.FilterSelection {
	sel := model.FilterSelection{
		Years:    r.Years,
		Branches: r.Branches,
	}
	if r.PackageRange != nil {
		sel.PackageRange = *r.PackageRange
	}
	if r.PlacementPctRange != nil {
		sel.PlacementPctRange = *r.PlacementPctRange
	}
	return sel
}
