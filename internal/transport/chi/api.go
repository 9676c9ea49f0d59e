package chi

// ErrorCode is a machine-readable error identifier in API responses.
type ErrorCode string

// API error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeNotLoaded        ErrorCode = "dataset_not_loaded"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RecommendRequest is the body of POST /api/v1/recommendations.
// Absent min_rating defaults to 3.5 and absent max_cost to the dataset cost median.
type RecommendRequest struct {
	City      string   `json:"city"`
	Cuisines  []string `json:"cuisines"`
	MinRating *float64 `json:"min_rating,omitempty"`
	MaxCost   *float64 `json:"max_cost,omitempty"`
	TopN      *int     `json:"top_n,omitempty"`
}

// RecommendationItem is one ranked restaurant.
type RecommendationItem struct {
	RowID       int     `json:"row_id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Cuisine     string  `json:"cuisine"`
	Rating      float64 `json:"rating"`
	RatingCount int64   `json:"rating_count"`
	Cost        float64 `json:"cost"`
	Link        string  `json:"link"`
	Score       float64 `json:"score"`
}

// RecommendResponse lists results best first.
type RecommendResponse struct {
	Items []RecommendationItem `json:"items"`
	Count int                  `json:"count"`
}

// CostRange describes the cost slider.
type CostRange struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// OptionsResponse is the body of GET /api/v1/options.
type OptionsResponse struct {
	Cities   []string  `json:"cities"`
	Cuisines []string  `json:"cuisines"`
	Cost     CostRange `json:"cost"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Fingerprint string            `json:"fingerprint,omitempty"`
}
