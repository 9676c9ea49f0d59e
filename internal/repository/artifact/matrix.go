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

// WriteMatrix writes the feature matrix as CSV: a leading row-id column, then one
// column per feature. ids[i] labels rows[i].
func WriteMatrix(w io.Writer, ids []int, columns []string, rows [][]float64) error {
	if len(ids) != len(rows) {
		return fmt.Errorf("%w: %d row ids for %d matrix rows", domain.ErrArtifactMismatch, len(ids), len(rows))
	}
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(columns)+1)
	header = append(header, rowIDHeader)
	header = append(header, columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write matrix header: %w", err)
	}

	line := make([]string, len(header))
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("%w: matrix row %d has %d values, want %d",
				domain.ErrArtifactMismatch, ids[i], len(row), len(columns))
		}
		line[0] = strconv.Itoa(ids[i])
		for j, v := range row {
			line[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write matrix row %d: %w", ids[i], err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush matrix: %w", err)
	}
	return nil
}

// Matrix is a feature matrix read back from disk.
type Matrix struct {
	Columns []string
	IDs     []int
	Rows    [][]float64
}

// ReadMatrix parses a file written by WriteMatrix.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: matrix header: %w", domain.ErrInputFormat, err)
	}
	if len(header) < 1 {
		return nil, fmt.Errorf("%w: matrix header is empty", domain.ErrInputFormat)
	}

	m := &Matrix{Columns: append([]string(nil), header[1:]...)}
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: matrix: %w", domain.ErrInputFormat, err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: matrix line %d: invalid row id %q", domain.ErrInputFormat, line, fields[0])
		}
		row := make([]float64, len(fields)-1)
		for j, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: matrix line %d column %d: %q is not a number",
					domain.ErrInputFormat, line, j+1, s)
			}
			row[j] = v
		}
		m.IDs = append(m.IDs, id)
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}
