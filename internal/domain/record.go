package domain

// Column names of the restaurant dataset.
const (
	ColName        = "name"
	ColCity        = "city"
	ColCuisine     = "cuisine"
	ColRating      = "rating"
	ColRatingCount = "rating_count"
	ColCost        = "cost"
	ColLink        = "link"
)

// UnknownCategory replaces a missing city or cuisine.
const UnknownCategory = "Unknown"

// RequiredColumns lists the columns every raw dataset must carry.
var RequiredColumns = []string{
	ColName, ColCity, ColCuisine, ColRating, ColRatingCount, ColCost, ColLink,
}

// IsRequired reports whether name is one of RequiredColumns.
func IsRequired(name string) bool {
	for _, c := range RequiredColumns {
		if c == name {
			return true
		}
	}
	return false
}

// Record is one cleaned restaurant row.
type Record struct {
	// RowID is the 0-based position shared with the feature matrix.
	RowID       int
	Name        string
	City        string
	Cuisine     string // comma-separated list, kept as one string
	Rating      float64
	RatingCount int64
	Cost        float64
	Link        string
	// Extra holds every non-required raw column, keyed by trimmed column name.
	// A missing value is stored as the empty string.
	Extra map[string]string
}
