// Package dataset loads raw restaurant listings into memory.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

// Supported raw input formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// DetectFormat maps a file extension to an input format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: unsupported file extension %q", domain.ErrInputFormat, filepath.Ext(path))
	}
}

// Load reads the raw table at path, choosing the reader by file extension.
func Load(path string) (*domain.RawTable, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var t *domain.RawTable
	switch format {
	case FormatParquet:
		stat, statErr := f.Stat()
		if statErr != nil {
			return nil, fmt.Errorf("stat %s: %w", path, statErr)
		}
		t, err = ReadParquet(f, stat.Size())
	default:
		t, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return t, nil
}
