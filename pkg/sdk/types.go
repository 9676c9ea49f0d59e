package dinerec

// Query selects and ranks restaurants.
type Query struct {
	City      string
	Cuisines  []string
	MinRating float64 // 0..5
	MaxCost   float64 // >= 0
	TopN      int     // 0 selects the client default
}

// Restaurant is one ranked result.
type Restaurant struct {
	RowID       int
	Name        string
	City        string
	Cuisine     string
	Rating      float64
	RatingCount int64
	Cost        float64
	Link        string
	Score       float64
}

// Options lists the values a query can select from.
type Options struct {
	Cities     []string
	Cuisines   []string
	CostMin    float64
	CostMax    float64
	CostMedian float64
}

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status      string            // "ok", "degraded", "error"
	Checks      map[string]string // component -> "ok"/"error"
	Fingerprint string
}

// Summary describes a finished Preprocess run.
type Summary struct {
	RowsIn      int
	Rows        int
	Duplicates  int
	Sentinels   int
	Imputed     map[string]int
	Features    int
	CleanedPath string
	MatrixPath  string
	EncoderPath string
}
