package dataset

import (
	"math"
	"testing"

	"github.com/gradstat/placement-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() model.Dataset {
	return model.Dataset{
		{Year: 2022, Branch: "CS", TotalStudents: 100, PlacedStudents: 80, PlacementPct: 80.0, AvgPackage: 10.0},
		{Year: 2022, Branch: "IT", TotalStudents: 90, PlacedStudents: 63, PlacementPct: 70.0, AvgPackage: 7.0},
		{Year: 2023, Branch: "CS", TotalStudents: 100, PlacedStudents: 90, PlacementPct: 90.0, AvgPackage: 12.0},
		{Year: 2023, Branch: "IT", TotalStudents: 95, PlacedStudents: 76, PlacementPct: 80.0, AvgPackage: 8.0},
	}
}

func fullSelection(ds model.Dataset) model.FilterSelection {
	min, max := ds.PackageBounds()
	return model.FilterSelection{
		Years:             ds.Years(),
		Branches:          ds.Branches(),
		PackageRange:      model.Range{Min: min, Max: max},
		PlacementPctRange: model.Range{Min: 0, Max: 100},
	}
}

func TestFilterConjunctive(t *testing.T) {
	ds := testDataset()

	sel := fullSelection(ds)
	sel.Years = []int{2023}
	sel.Branches = []string{"CS"}

	out := Filter(ds, sel)
	require.Len(t, out, 1)
	assert.Equal(t, 2023, out[0].Year)
	assert.Equal(t, "CS", out[0].Branch)
}

func TestFilterRangeInclusive(t *testing.T) {
	ds := testDataset()

	sel := fullSelection(ds)
	// Bounds exactly on record values are kept.
	sel.PackageRange = model.Range{Min: 7.0, Max: 10.0}

	out := Filter(ds, sel)
	require.Len(t, out, 3)
	for _, r := range out {
		assert.GreaterOrEqual(t, r.AvgPackage, 7.0)
		assert.LessOrEqual(t, r.AvgPackage, 10.0)
	}
}

func TestFilterExcludesMissingValues(t *testing.T) {
	ds := testDataset()
	ds = append(ds, model.PlacementRecord{
		Year: 2023, Branch: "CS", PlacementPct: 75.0, AvgPackage: math.NaN(),
	})

	out := Filter(ds, fullSelection(testDataset()))
	// The NaN row fails the package range predicate.
	assert.Len(t, out, 4)
}

func TestFilterEmptyResultIsValid(t *testing.T) {
	ds := testDataset()

	sel := fullSelection(ds)
	sel.Years = []int{1999}

	out := Filter(ds, sel)
	assert.Empty(t, out)
}

func TestActiveFilterCount(t *testing.T) {
	ds := testDataset()

	assert.Equal(t, 0, ActiveFilterCount(ds, fullSelection(ds)))

	sel := fullSelection(ds)
	sel.Years = []int{2023}
	assert.Equal(t, 1, ActiveFilterCount(ds, sel))

	sel.Branches = []string{"CS"}
	assert.Equal(t, 2, ActiveFilterCount(ds, sel))

	sel.PackageRange = model.Range{Min: 8.0, Max: 12.0}
	sel.PlacementPctRange = model.Range{Min: 50, Max: 100}
	assert.Equal(t, 4, ActiveFilterCount(ds, sel))
}

func TestNormalizeFillsSelectAll(t *testing.T) {
	repo := NewRepository(testDataset(), zerolog.Nop())

	norm := repo.Normalize(model.FilterSelection{})
	assert.ElementsMatch(t, []int{2022, 2023}, norm.Years)
	assert.ElementsMatch(t, []string{"CS", "IT"}, norm.Branches)
	assert.Equal(t, model.Range{Min: 7.0, Max: 12.0}, norm.PackageRange)
	assert.Equal(t, model.Range{Min: 0, Max: 100}, norm.PlacementPctRange)

	// A normalized empty selection filters to the whole dataset.
	view, _ := repo.Filter(model.FilterSelection{})
	assert.Len(t, view, len(testDataset()))
}

func TestOptionsOrdering(t *testing.T) {
	ds := model.Dataset{
		{Year: 2021, Branch: "Robotics", AvgPackage: 6.0},
		{Year: 2022, Branch: "Civil", AvgPackage: 5.0},
		{Year: 2023, Branch: "Computer Science", AvgPackage: 9.0},
	}
	repo := NewRepository(ds, zerolog.Nop())

	opts := repo.Options()
	// Years newest first.
	assert.Equal(t, []int{2023, 2022, 2021}, opts.Years)
	// Known branches in display order, unknown ones appended.
	assert.Equal(t, []string{"Computer Science", "Civil", "Robotics"}, opts.Branches)
	assert.Equal(t, model.Range{Min: 5.0, Max: 9.0}, opts.PackageRange)
}
