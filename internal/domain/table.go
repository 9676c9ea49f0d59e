package domain

import "fmt"

// RawTable is raw tabular input: a header plus string cells.
// A cell is missing when its Valid flag is false.
type RawTable struct {
	Columns []string
	Rows    [][]Cell
}

// Cell is a single raw value.
type Cell struct {
	Value string
	Valid bool
}

// Str creates a present cell.
func Str(v string) Cell { return Cell{Value: v, Valid: true} }

// Missing creates a missing cell.
func Missing() Cell { return Cell{} }

// ColumnIndex returns the position of name in Columns, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Validate checks that every row has one cell per column.
func (t *RawTable) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d fields, header has %d",
				ErrInputFormat, i, len(row), len(t.Columns))
		}
	}
	return nil
}

// CleanedTable is the ordered output of the cleaner.
// Records[i].RowID == i for every i.
type CleanedTable struct {
	// Columns preserves the raw column order (trimmed names).
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t *CleanedTable) Len() int { return len(t.Records) }

// Value returns the cell of column for record r formatted as text.
func (t *CleanedTable) Value(r *Record, column string) string {
	switch column {
	case ColName:
		return r.Name
	case ColCity:
		return r.City
	case ColCuisine:
		return r.Cuisine
	case ColRating:
		return FormatFloat(r.Rating)
	case ColRatingCount:
		return FormatInt(r.RatingCount)
	case ColCost:
		return FormatFloat(r.Cost)
	case ColLink:
		return r.Link
	default:
		return r.Extra[column]
	}
}

// Raw converts the cleaned table back to raw form (without the row-id column).
// Empty values become missing cells.
func (t *CleanedTable) Raw() *RawTable {
	raw := &RawTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]Cell, 0, len(t.Records)),
	}
	for i := range t.Records {
		rec := &t.Records[i]
		row := make([]Cell, len(t.Columns))
		for j, col := range t.Columns {
			v := t.Value(rec, col)
			if v == "" {
				row[j] = Missing()
				continue
			}
			row[j] = Str(v)
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t *CleanedTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
