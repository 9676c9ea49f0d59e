package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

const utf8BOM = "\ufeff"

// ReadCSV parses comma-separated input with a header row.
// Empty fields are missing. Every record must have as many fields as the header.
// A quote inside an unquoted field is kept literally (Tom "Dhaba").
func ReadCSV(r io.Reader) (*domain.RawTable, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input, header row expected", domain.ErrInputFormat)
		}
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrInputFormat, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := &domain.RawTable{Columns: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInputFormat, err)
		}

		row := make([]domain.Cell, len(rec))
		for i, v := range rec {
			if v == "" {
				row[i] = domain.Missing()
				continue
			}
			row[i] = domain.Str(v)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
