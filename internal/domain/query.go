package domain

import (
	"fmt"
	"math"
	"strings"
)

// Query limits.
const (
	MinRatingFloor = 0.0
	MaxRatingCeil  = 5.0
	DefaultTopN    = 10
	MaxTopN        = 100
)

// Query is a validated user query.
type Query struct {
	city      string
	cuisines  []string
	minRating float64
	maxCost   float64
}

// NewQuery validates and normalizes user input.
// Cuisines are trimmed; blank entries and exact duplicates are dropped, order is kept.
func NewQuery(city string, cuisines []string, minRating, maxCost float64) (Query, error) {
	if city == "" {
		return Query{}, fmt.Errorf("%w: city is required", ErrInvalidQuery)
	}

	seen := make(map[string]struct{}, len(cuisines))
	cleaned := make([]string, 0, len(cuisines))
	for _, c := range cuisines {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cleaned = append(cleaned, c)
	}
	if len(cleaned) == 0 {
		return Query{}, fmt.Errorf("%w: at least one cuisine is required", ErrInvalidQuery)
	}
	if math.IsNaN(minRating) || minRating < MinRatingFloor || minRating > MaxRatingCeil {
		return Query{}, fmt.Errorf("%w: min_rating must be between %g and %g",
			ErrInvalidQuery, MinRatingFloor, MaxRatingCeil)
	}
	if math.IsNaN(maxCost) || math.IsInf(maxCost, 0) || maxCost < 0 {
		return Query{}, fmt.Errorf("%w: max_cost must be a non-negative number", ErrInvalidQuery)
	}

	return Query{
		city:      city,
		cuisines:  cleaned,
		minRating: minRating,
		maxCost:   maxCost,
	}, nil
}

// City returns the exact city to filter on.
func (q *Query) City() string { return q.city }

// Cuisines returns the selected cuisines in input order.
func (q *Query) Cuisines() []string { return q.cuisines }

// MinRating returns the target rating.
func (q *Query) MinRating() float64 { return q.minRating }

// MaxCost returns the target cost.
func (q *Query) MaxCost() float64 { return q.maxCost }

// JoinedCuisines returns the cuisines joined by "," as fed to the encoder.
func (q *Query) JoinedCuisines() string { return strings.Join(q.cuisines, ",") }

// CuisineSet returns the lower-cased cuisine set used for candidate filtering.
func (q *Query) CuisineSet() map[string]struct{} {
	set := make(map[string]struct{}, len(q.cuisines))
	for _, c := range q.cuisines {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}

// ClampTopN applies the default and the upper bound to a requested result size.
func ClampTopN(topN, def, maxN int) int {
	if topN <= 0 {
		topN = def
	}
	if maxN > 0 && topN > maxN {
		topN = maxN
	}
	return topN
}
