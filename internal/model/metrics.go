package model

// DerivedMetrics is the KPI snapshot computed from a (possibly filtered)
// dataset. The three delta pointers are nil whenever fewer than two
// distinct years are present, or when the previous-year denominator is
// zero. "Previous year" means the second-highest year value present
// after filtering, which is not necessarily calendar-adjacent.
type DerivedMetrics struct {
	TotalPlaced          int     `json:"total_placed"`
	TotalStudents        int     `json:"total_students"`
	OverallPlacementPct  float64 `json:"overall_placement_pct"`
	HighestPackage       float64 `json:"highest_package"`
	HighestPackageBranch string  `json:"highest_package_branch"`
	WeightedAvgPackage   float64 `json:"weighted_avg_package"`

	YoYPlacedChange     *float64 `json:"yoy_placed_change"`
	YoYAvgPackageChange *float64 `json:"yoy_avg_pkg_change"`
	PlacementPctDelta   *float64 `json:"pct_delta"`
}

// EmptyMetrics is the zero-valued snapshot returned for an empty
// dataset: all counts zero, percentages 0.0, deltas absent.
func EmptyMetrics() DerivedMetrics {
	return DerivedMetrics{
		HighestPackageBranch: "N/A",
	}
}
