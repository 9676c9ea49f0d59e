package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

// Paths lists the files written by Save.
type Paths struct {
	Cleaned string
	Matrix  string
	Encoder string
}

// Save writes all three artifacts into dir. Every file is first written to a
// temporary sibling; the final names appear only after all writes succeed.
func Save(
	dir string, names Names, table *domain.CleanedTable, enc *encode.Encoder, matrix [][]float64,
) (Paths, error) {
	if _, err := NewBundle(table, enc, matrix); err != nil {
		return Paths{}, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Paths{}, fmt.Errorf("create artifact dir: %w", err)
	}

	cleanedPath, matrixPath, encoderPath := names.WithDefaults().Paths(dir)
	ids := make([]int, len(table.Records))
	for i := range table.Records {
		ids[i] = table.Records[i].RowID
	}

	writers := []struct {
		path  string
		write func(io.Writer) error
	}{
		{cleanedPath, func(w io.Writer) error { return WriteCleaned(w, table) }},
		{matrixPath, func(w io.Writer) error { return WriteMatrix(w, ids, enc.ColumnNames(), matrix) }},
		{encoderPath, func(w io.Writer) error { return WriteEncoder(w, enc) }},
	}

	temps := make([]string, 0, len(writers))
	cleanup := func() {
		for _, t := range temps {
			_ = os.Remove(t)
		}
	}

	for _, wr := range writers {
		tmp, err := writeTemp(wr.path, wr.write)
		if err != nil {
			cleanup()
			return Paths{}, err
		}
		temps = append(temps, tmp)
	}

	var renameErr error
	for i, wr := range writers {
		if err := os.Rename(temps[i], wr.path); err != nil {
			renameErr = errors.Join(renameErr, fmt.Errorf("rename %s: %w", filepath.Base(wr.path), err))
		}
	}
	if renameErr != nil {
		cleanup()
		return Paths{}, renameErr
	}

	return Paths{Cleaned: cleanedPath, Matrix: matrixPath, Encoder: encoderPath}, nil
}

func writeTemp(final string, write func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(final), "."+filepath.Base(final)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", filepath.Base(final), err)
	}
	name := f.Name()

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("write %s: %w", filepath.Base(final), err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close %s: %w", filepath.Base(final), err)
	}
	return name, nil
}
