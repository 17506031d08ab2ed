package dataset

import (
	"sort"

	"github.com/gradstat/placement-backend/internal/model"
	"github.com/rs/zerolog"
)

// Preferred display order for the well-known branches. Branches outside
// this list are appended alphabetically rather than hidden; any branch
// string is accepted by the filter engine.
var branchDisplayOrder = []string{
	"Computer Science", "IT", "Electronics", "Mechanical", "Civil",
}

// Repository owns the loaded dataset for the process lifetime. The
// dataset is immutable after Open; every accessor returns views or
// copies, never a handle that can mutate the canonical rows.
type Repository struct {
	all model.Dataset
	log zerolog.Logger
}

// Open loads the dataset from path and wraps it in a Repository.
func Open(path string, log zerolog.Logger) (*Repository, error) {
	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("path", path).
		Int("rows", len(ds)).
		Ints("years", ds.Years()).
		Msg("Dataset loaded")
	return &Repository{all: ds, log: log}, nil
}

// NewRepository wraps an already-parsed dataset; used by tests and the
// seed tooling.
func NewRepository(ds model.Dataset, log zerolog.Logger) *Repository {
	return &Repository{all: ds, log: log}
}

// All returns the full canonical dataset.
func (r *Repository) All() model.Dataset { return r.all }

// Options returns the full filter domain for the loaded dataset: years
// newest-first, branches in display order, and the package/percentage
// bounds the range controls should span.
func (r *Repository) Options() model.FilterOptions {
	years := r.all.Years()
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	pkgMin, pkgMax := r.all.PackageBounds()
	return model.FilterOptions{
		Years:             years,
		Branches:          r.orderedBranches(),
		PackageRange:      model.Range{Min: pkgMin, Max: pkgMax},
		PlacementPctRange: model.Range{Min: 0, Max: 100},
	}
}

// Normalize fills a raw selection's gaps with the full domain: empty
// year/branch sets become select-all, and a zero-valued range becomes
// the dataset's full span. The returned selection is safe to pass to
// Filter and to use as a memoization key.
func (r *Repository) Normalize(sel model.FilterSelection) model.FilterSelection {
	out := sel
	if len(out.Years) == 0 {
		out.Years = r.all.Years()
	}
	if len(out.Branches) == 0 {
		out.Branches = r.all.Branches()
	}
	if out.PackageRange == (model.Range{}) {
		min, max := r.all.PackageBounds()
		out.PackageRange = model.Range{Min: min, Max: max}
	}
	if out.PlacementPctRange == (model.Range{}) {
		out.PlacementPctRange = model.Range{Min: 0, Max: 100}
	}
	return out
}

// Filter normalizes and applies the selection in one step.
func (r *Repository) Filter(sel model.FilterSelection) (model.Dataset, model.FilterSelection) {
	norm := r.Normalize(sel)
	return Filter(r.all, norm), norm
}

func (r *Repository) orderedBranches() []string {
	present := make(map[string]bool)
	for _, b := range r.all.Branches() {
		present[b] = true
	}

	var out []string
	for _, b := range branchDisplayOrder {
		if present[b] {
			out = append(out, b)
			delete(present, b)
		}
	}
	var rest []string
	for b := range present {
		rest = append(rest, b)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
