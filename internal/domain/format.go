package domain

import "strconv"

// FormatFloat renders f with the shortest representation that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatInt renders i in base 10.
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
