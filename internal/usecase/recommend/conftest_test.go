package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

type fakeDataset struct {
	records []domain.Record
	matrix  [][]float64
	enc     *encode.Encoder
}

func (f *fakeDataset) Records() []domain.Record { return f.records }
func (f *fakeDataset) Matrix() [][]float64 { return f.matrix }
func (f *fakeDataset) Encoder() *encode.Encoder { return f.enc }
func (f *fakeDataset) Fingerprint() string { return "fp-test" }

func rec(id int, name, city, cuisine string, rating float64, count int64, cost float64) domain.Record {
	return domain.Record{
		RowID: id, Name: name, City: city, Cuisine: cuisine,
		Rating: rating, RatingCount: count, Cost: cost, Link: "/r/" + name,
	}
}

func newDataset(records ...domain.Record) *fakeDataset {
	table := &domain.CleanedTable{Columns: domain.RequiredColumns, Records: records}
	enc, matrix := encode.Fit(table)
	return &fakeDataset{records: records, matrix: matrix, enc: enc}
}

func mustQuery(t *testing.T, city string, cuisines []string, rating, cost float64) domain.Query {
	t.Helper()
	q, err := domain.NewQuery(city, cuisines, rating, cost)
	require.NoError(t, err)
	return q
}
