package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

const parquetBatchRows = 1000

// ReadParquet reads a flat parquet file. Every leaf column becomes a string column;
// null values are missing. Nested schemas are rejected.
func ReadParquet(r io.ReaderAt, size int64) (*domain.RawTable, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet: %w", domain.ErrInputFormat, err)
	}

	paths := pf.Schema().Columns()
	columns := make([]string, len(paths))
	for i, path := range paths {
		if len(path) != 1 {
			return nil, fmt.Errorf("%w: nested parquet column %q is not supported",
				domain.ErrInputFormat, strings.Join(path, "."))
		}
		columns[i] = path[0]
	}

	t := &domain.RawTable{Columns: columns}
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, len(columns), t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func readRowGroup(rg parquet.RowGroup, width int, t *domain.RawTable) error {
	rows := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, parquetBatchRows)

	for {
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			t.Rows = append(t.Rows, rowToCells(buf[i], width))
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: read rows: %w", domain.ErrInputFormat, readErr)
		}
	}
}

// rowToCells places each value by its leaf column index.
func rowToCells(row parquet.Row, width int) []domain.Cell {
	cells := make([]domain.Cell, width)
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= width || v.IsNull() {
			continue
		}
		s := v.String()
		if s == "" {
			continue
		}
		cells[col] = domain.Str(s)
	}
	return cells
}
