package health

import "context"

// DatasetSource reports which dataset is loaded; empty when none.
type DatasetSource interface {
	Fingerprint() string
}

// CachePinger checks result cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
