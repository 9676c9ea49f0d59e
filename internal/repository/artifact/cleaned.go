package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

// rowIDHeader labels the leading row-id column.
const rowIDHeader = ""

// WriteCleaned writes the cleaned table as CSV: a leading row-id column followed
// by the raw columns in their original order.
func WriteCleaned(w io.Writer, t *domain.CleanedTable) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, rowIDHeader)
	header = append(header, t.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write cleaned header: %w", err)
	}

	line := make([]string, len(header))
	for i := range t.Records {
		rec := &t.Records[i]
		line[0] = strconv.Itoa(rec.RowID)
		for j, col := range t.Columns {
			line[j+1] = t.Value(rec, col)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write cleaned row %d: %w", rec.RowID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush cleaned table: %w", err)
	}
	return nil
}

// ReadCleaned parses a file written by WriteCleaned. Numeric columns must be
// fully imputed; row ids must be strictly increasing.
func ReadCleaned(r io.Reader) (*domain.CleanedTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cleaned table header: %w", domain.ErrInputFormat, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: cleaned table has no data columns", domain.ErrInputFormat)
	}

	t := &domain.CleanedTable{Columns: append([]string(nil), header[1:]...)}
	for _, req := range domain.RequiredColumns {
		if t.ColumnIndex(req) < 0 {
			return nil, domain.NewMissingColumn(req)
		}
	}

	prev := -1
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: cleaned table: %w", domain.ErrInputFormat, err)
		}

		rec, err := parseCleanedRow(t.Columns, fields)
		if err != nil {
			return nil, fmt.Errorf("%w: cleaned table line %d: %w", domain.ErrInputFormat, line, err)
		}
		if rec.RowID <= prev {
			return nil, fmt.Errorf("%w: cleaned table line %d: row id %d is not increasing",
				domain.ErrInputFormat, line, rec.RowID)
		}
		prev = rec.RowID
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func parseCleanedRow(columns, fields []string) (domain.Record, error) {
	var rec domain.Record
	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || id < 0 {
		return rec, fmt.Errorf("invalid row id %q", fields[0])
	}
	rec.RowID = id

	for j, col := range columns {
		v := fields[j+1]
		switch col {
		case domain.ColName:
			rec.Name = v
		case domain.ColCity:
			rec.City = v
		case domain.ColCuisine:
			rec.Cuisine = v
		case domain.ColLink:
			rec.Link = v
		case domain.ColRating:
			rec.Rating, err = parseFinite(col, v)
		case domain.ColCost:
			rec.Cost, err = parseFinite(col, v)
		case domain.ColRatingCount:
			rec.RatingCount, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				err = fmt.Errorf("column %s: %q is not an integer", col, v)
			}
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = v
		}
		if err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func parseFinite(col, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %s: %q is not a number", col, v)
	}
	return f, nil
}
