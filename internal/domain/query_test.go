package domain

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestNewQuery_NormalizesCuisines(t *testing.T) {
	q, err := NewQuery("Agra", []string{" Thai", "", "Chinese ", "Thai"}, 3.5, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(q.Cuisines(), []string{"Thai", "Chinese"}) {
		t.Errorf("cuisines: got %v", q.Cuisines())
	}
	if q.JoinedCuisines() != "Thai,Chinese" {
		t.Errorf("joined: got %q", q.JoinedCuisines())
	}
	if _, ok := q.CuisineSet()["chinese"]; !ok {
		t.Errorf("cuisine set must be lower-cased: %v", q.CuisineSet())
	}
}

func TestNewQuery_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		city      string
		cuisines  []string
		minRating float64
		maxCost   float64
	}{
		{"empty city", "", []string{"Thai"}, 3, 100},
		{"no cuisines", "Agra", nil, 3, 100},
		{"blank cuisines", "Agra", []string{" ", ""}, 3, 100},
		{"rating below range", "Agra", []string{"Thai"}, -0.5, 100},
		{"rating above range", "Agra", []string{"Thai"}, 5.5, 100},
		{"rating NaN", "Agra", []string{"Thai"}, math.NaN(), 100},
		{"negative cost", "Agra", []string{"Thai"}, 3, -1},
		{"infinite cost", "Agra", []string{"Thai"}, 3, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuery(tt.city, tt.cuisines, tt.minRating, tt.maxCost)
			if !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestClampTopN(t *testing.T) {
	tests := []struct {
		in, def, maxN, want int
	}{
		{0, 10, 100, 10},
		{-3, 10, 100, 10},
		{5, 10, 100, 5},
		{500, 10, 100, 100},
		{500, 10, 0, 500},
	}
	for _, tt := range tests {
		if got := ClampTopN(tt.in, tt.def, tt.maxN); got != tt.want {
			t.Errorf("ClampTopN(%d, %d, %d) = %d, want %d", tt.in, tt.def, tt.maxN, got, tt.want)
		}
	}
}
