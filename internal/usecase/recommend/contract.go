package recommend

import (
	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

// Dataset is the read-only artifact triple queries run against.
type Dataset interface {
	Records() []domain.Record
	Matrix() [][]float64
	Encoder() *encode.Encoder
	Fingerprint() string
}
