// Package recommend ranks restaurants against a user query by cosine
// similarity over the encoded feature space.
package recommend

import (
	"cmp"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

// Result is a ranked record with its similarity to the query row.
type Result struct {
	Record domain.Record
	Score  float64
}

type candidate struct {
	pos   int
	score float64
}

// Recommend filters records by city and cuisine, scores the survivors against a
// synthetic query row and returns at most topN of them, best first.
// matrix[i] must be the feature row of records[i]. Ties keep row order.
// No survivors yields an empty result.
func Recommend(
	q *domain.Query, enc *encode.Encoder, matrix [][]float64, records []domain.Record, topN int,
) []Result {
	if topN <= 0 {
		return nil
	}

	positions := Filter(q, records)
	if len(positions) == 0 {
		return []Result{}
	}

	var countSum float64
	for _, p := range positions {
		countSum += matrix[p][encode.RatingCountColumn]
	}
	meanCount := countSum / float64(len(positions))

	// The joined cuisine string rarely matches a fitted category, so this block
	// is usually all zeros. Kept as is for parity with existing rankings.
	queryRow := enc.EncodeRow(q.MinRating(), meanCount, q.MaxCost(), q.City(), q.JoinedCuisines())

	cands := make([]candidate, len(positions))
	for i, p := range positions {
		cands[i] = candidate{pos: p, score: Cosine(queryRow, matrix[p])}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})

	if len(cands) > topN {
		cands = cands[:topN]
	}
	out := make([]Result, len(cands))
	for i, c := range cands {
		out[i] = Result{Record: records[c.pos], Score: c.score}
	}
	return out
}

// Filter returns the positions of records in the query city whose cuisine list
// shares at least one token with the query cuisines (case-insensitive).
func Filter(q *domain.Query, records []domain.Record) []int {
	want := q.CuisineSet()
	var out []int
	for i := range records {
		if records[i].City != q.City() {
			continue
		}
		if matchesAny(records[i].Cuisine, want) {
			out = append(out, i)
		}
	}
	return out
}

func matchesAny(cuisine string, want map[string]struct{}) bool {
	for _, tok := range strings.Split(cuisine, ",") {
		if _, ok := want[strings.ToLower(strings.TrimSpace(tok))]; ok {
			return true
		}
	}
	return false
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero norm
// or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
