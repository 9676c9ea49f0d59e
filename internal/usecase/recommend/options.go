package recommend

import (
	"math"
	"slices"
	"strings"

	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/clean"
)

// Options describes the selectable filter values of a dataset.
type Options struct {
	Cities   []string
	Cuisines []string
	// Cost bounds and default for a max-cost selector.
	CostMin    float64
	CostMax    float64
	CostMedian float64
}

// BuildOptions derives the sorted city list, the sorted list of distinct trimmed
// cuisine tokens and the cost range of records.
func BuildOptions(records []domain.Record) Options {
	cities := make(map[string]struct{})
	cuisines := make(map[string]struct{})
	costs := make([]float64, 0, len(records))

	opts := Options{CostMin: math.Inf(1), CostMax: math.Inf(-1)}
	for i := range records {
		r := &records[i]
		cities[r.City] = struct{}{}
		for _, tok := range strings.Split(r.Cuisine, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				cuisines[tok] = struct{}{}
			}
		}
		costs = append(costs, r.Cost)
		opts.CostMin = math.Min(opts.CostMin, r.Cost)
		opts.CostMax = math.Max(opts.CostMax, r.Cost)
	}
	if len(records) == 0 {
		opts.CostMin, opts.CostMax = 0, 0
	}

	opts.Cities = keys(cities)
	opts.Cuisines = keys(cuisines)
	opts.CostMedian = clean.Median(costs)
	return opts
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
