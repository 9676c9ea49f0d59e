// Package clean turns a raw restaurant table into the cleaned table:
// trimmed header, no duplicate rows, no sentinel placeholders, no missing
// categorical or numeric values.
package clean

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

// Sentinels are raw tokens that mean "value unavailable".
// The last one is the rupee sign mis-decoded as Windows-1252.
var Sentinels = []string{"--", "Too Few Ratings", "license", "â‚¹"}

var (
	nonNumeric  = regexp.MustCompile(`[^\d.]`)
	firstDigits = regexp.MustCompile(`\d+`)
)

// Report summarizes what Clean changed.
type Report struct {
	RowsIn     int
	RowsOut    int
	Duplicates int
	Sentinels  int
	// Imputed counts filled values per column (city, cuisine, rating, rating_count, cost).
	Imputed map[string]int
	// Medians holds the fill value of each numeric column.
	Medians map[string]float64
}

// numericColumn is a parsed numeric column with a presence mask.
type numericColumn struct {
	values  []float64
	present []bool
}

// Clean runs the cleaning pipeline over raw. raw is not modified.
func Clean(raw *domain.RawTable) (*domain.CleanedTable, Report, error) {
	if raw == nil || len(raw.Columns) == 0 {
		return nil, Report{}, fmt.Errorf("%w: table has no header", domain.ErrInputFormat)
	}
	if err := raw.Validate(); err != nil {
		return nil, Report{}, err
	}

	columns := make([]string, len(raw.Columns))
	for i, c := range raw.Columns {
		columns[i] = strings.TrimSpace(c)
	}
	idx, err := resolveColumns(columns)
	if err != nil {
		return nil, Report{}, err
	}

	rep := Report{
		RowsIn:  len(raw.Rows),
		Imputed: make(map[string]int, 5),
		Medians: make(map[string]float64, 3),
	}

	rows := dropDuplicates(raw.Rows)
	rep.Duplicates = len(raw.Rows) - len(rows)
	rows, rep.Sentinels = replaceSentinels(rows)

	ratings := parseColumn(rows, idx[domain.ColRating], parseRating)
	counts := parseColumn(rows, idx[domain.ColRatingCount], parseRatingCount)
	costs := parseColumn(rows, idx[domain.ColCost], parseCost)

	// Medians are taken before any fill so columns stay independent.
	for name, col := range map[string]*numericColumn{
		domain.ColRating:      &ratings,
		domain.ColRatingCount: &counts,
		domain.ColCost:        &costs,
	} {
		m := col.median()
		if name == domain.ColRatingCount {
			m = math.Round(m)
		}
		rep.Medians[name] = m
		rep.Imputed[name] = col.fill(m)
	}

	out := &domain.CleanedTable{
		Columns: columns,
		Records: make([]domain.Record, len(rows)),
	}
	for i, row := range rows {
		rec := domain.Record{
			RowID:       i,
			Name:        row[idx[domain.ColName]].Value,
			City:        categorical(row[idx[domain.ColCity]], &rep, domain.ColCity),
			Cuisine:     categorical(row[idx[domain.ColCuisine]], &rep, domain.ColCuisine),
			Rating:      ratings.values[i],
			RatingCount: int64(counts.values[i]),
			Cost:        costs.values[i],
			Link:        row[idx[domain.ColLink]].Value,
		}
		for j, col := range columns {
			if domain.IsRequired(col) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = row[j].Value
		}
		out.Records[i] = rec
	}
	rep.RowsOut = len(out.Records)

	return out, rep, nil
}

// resolveColumns maps each required column to its first position.
func resolveColumns(columns []string) (map[string]int, error) {
	idx := make(map[string]int, len(domain.RequiredColumns))
	for _, req := range domain.RequiredColumns {
		pos := slices.Index(columns, req)
		if pos < 0 {
			return nil, domain.NewMissingColumn(req)
		}
		idx[req] = pos
	}
	return idx, nil
}

// dropDuplicates keeps the first occurrence of every distinct row, in order.
func dropDuplicates(rows [][]domain.Cell) [][]domain.Cell {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]domain.Cell, 0, len(rows))
	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for _, c := range row {
			if c.Valid {
				sb.WriteByte('v')
				sb.WriteString(strconv.Quote(c.Value))
			} else {
				sb.WriteByte('-')
			}
			sb.WriteByte(0x1f)
		}
		key := sb.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// replaceSentinels returns copies of rows with every literal sentinel cell set to missing.
func replaceSentinels(rows [][]domain.Cell) ([][]domain.Cell, int) {
	replaced := 0
	out := make([][]domain.Cell, len(rows))
	for i, row := range rows {
		cp := make([]domain.Cell, len(row))
		for j, c := range row {
			if c.Valid && slices.Contains(Sentinels, c.Value) {
				cp[j] = domain.Missing()
				replaced++
				continue
			}
			cp[j] = c
		}
		out[i] = cp
	}
	return out, replaced
}

func categorical(c domain.Cell, rep *Report, column string) string {
	if !c.Valid || c.Value == "" {
		rep.Imputed[column]++
		return domain.UnknownCategory
	}
	return c.Value
}

func parseColumn(rows [][]domain.Cell, pos int, parse func(string) (float64, bool)) numericColumn {
	col := numericColumn{
		values:  make([]float64, len(rows)),
		present: make([]bool, len(rows)),
	}
	for i, row := range rows {
		c := row[pos]
		if !c.Valid {
			continue
		}
		col.values[i], col.present[i] = parse(c.Value)
	}
	return col
}

// parseCost keeps only digits and dots, then parses what is left.
func parseCost(s string) (float64, bool) {
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return 0, false
	}
	return finite(strconv.ParseFloat(s, 64))
}

// parseRatingCount takes the first run of digits ("120 votes" -> 120).
func parseRatingCount(s string) (float64, bool) {
	digits := firstDigits.FindString(s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

func parseRating(s string) (float64, bool) {
	return finite(strconv.ParseFloat(strings.TrimSpace(s), 64))
}

func finite(f float64, err error) (float64, bool) {
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// median returns the median of present values, averaging the middle pair
// for an even count. A column with no present value has median 0.
func (c *numericColumn) median() float64 {
	vals := make([]float64, 0, len(c.values))
	for i, v := range c.values {
		if c.present[i] {
			vals = append(vals, v)
		}
	}
	return Median(vals)
}

// fill sets every absent value to v and returns how many were filled.
func (c *numericColumn) fill(v float64) int {
	n := 0
	for i := range c.values {
		if !c.present[i] {
			c.values[i] = v
			c.present[i] = true
			n++
		}
	}
	return n
}

// Median returns the median of vals without modifying it; 0 for an empty slice.
func Median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
