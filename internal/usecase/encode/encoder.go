// Package encode builds the numeric feature matrix from the cleaned table:
// three passthrough numeric columns followed by one-hot blocks for city and cuisine.
package encode

import (
	"slices"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

// NumericColumns are copied verbatim, in this order, in front of the one-hot blocks.
var NumericColumns = []string{domain.ColRating, domain.ColRatingCount, domain.ColCost}

// CategoricalColumns are one-hot encoded, in this order.
var CategoricalColumns = []string{domain.ColCity, domain.ColCuisine}

// RatingCountColumn is the feature position of rating_count.
const RatingCountColumn = 1

// block is the one-hot layout of a single categorical field.
type block struct {
	name       string
	categories []string // sorted, unique
	index      map[string]int
	offset     int // first feature column of the block
}

func newBlock(name string, categories []string, offset int) block {
	idx := make(map[string]int, len(categories))
	for i, c := range categories {
		idx[c] = i
	}
	return block{name: name, categories: categories, index: idx, offset: offset}
}

// Encoder is a fitted one-hot layout. It is immutable after Fit or Decode
// and safe for concurrent use.
type Encoder struct {
	blocks []block
	width  int
}

func newEncoder(cities, cuisines []string) *Encoder {
	e := &Encoder{}
	offset := len(NumericColumns)
	for i, cats := range [][]string{cities, cuisines} {
		b := newBlock(CategoricalColumns[i], cats, offset)
		e.blocks = append(e.blocks, b)
		offset += len(cats)
	}
	e.width = offset
	return e
}

// FitEncoder collects the distinct cities and cuisines of records.
// Categories are sorted so the column layout is reproducible.
func FitEncoder(records []domain.Record) *Encoder {
	cities := make(map[string]struct{})
	cuisines := make(map[string]struct{})
	for i := range records {
		cities[records[i].City] = struct{}{}
		cuisines[records[i].Cuisine] = struct{}{}
	}
	return newEncoder(sortedKeys(cities), sortedKeys(cuisines))
}

// Fit fits an encoder on the table and transforms every record.
// Row i of the matrix describes table.Records[i].
func Fit(table *domain.CleanedTable) (*Encoder, [][]float64) {
	enc := FitEncoder(table.Records)
	return enc, enc.Transform(table.Records)
}

// Transform encodes records with the fitted layout.
func (e *Encoder) Transform(records []domain.Record) [][]float64 {
	rows := make([][]float64, len(records))
	for i := range records {
		r := &records[i]
		rows[i] = e.EncodeRow(r.Rating, float64(r.RatingCount), r.Cost, r.City, r.Cuisine)
	}
	return rows
}

// EncodeRow builds one feature row. A city or cuisine unseen at fit time
// leaves its block all zeros.
func (e *Encoder) EncodeRow(rating, ratingCount, cost float64, city, cuisine string) []float64 {
	row := make([]float64, e.width)
	row[0] = rating
	row[1] = ratingCount
	row[2] = cost
	for i, v := range []string{city, cuisine} {
		b := &e.blocks[i]
		if pos, ok := b.index[v]; ok {
			row[b.offset+pos] = 1
		}
	}
	return row
}

// Width returns the number of feature columns: 3 + |cities| + |cuisines|.
func (e *Encoder) Width() int { return e.width }

// Categories returns a copy of the fitted categories of a field, or nil.
func (e *Encoder) Categories(field string) []string {
	for i := range e.blocks {
		if e.blocks[i].name == field {
			return slices.Clone(e.blocks[i].categories)
		}
	}
	return nil
}

// ColumnNames labels every feature column ("rating", ..., "city=Agra", "cuisine=Thai").
func (e *Encoder) ColumnNames() []string {
	names := make([]string, 0, e.width)
	names = append(names, NumericColumns...)
	for i := range e.blocks {
		for _, c := range e.blocks[i].categories {
			names = append(names, e.blocks[i].name+"="+c)
		}
	}
	return names
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
