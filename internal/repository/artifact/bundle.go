package artifact

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

// Bundle is the loaded (cleaned table, feature matrix, encoder) triple.
// It is never modified after construction and may be shared across goroutines.
type Bundle struct {
	table  *domain.CleanedTable
	matrix [][]float64
	enc    *encode.Encoder
	fp     string
}

// NewBundle checks row alignment and matrix width and wraps the triple.
func NewBundle(table *domain.CleanedTable, enc *encode.Encoder, matrix [][]float64) (*Bundle, error) {
	if table == nil || enc == nil {
		return nil, fmt.Errorf("%w: table and encoder are required", domain.ErrArtifactMismatch)
	}
	if len(matrix) != len(table.Records) {
		return nil, fmt.Errorf("%w: cleaned table has %d rows, feature matrix has %d",
			domain.ErrArtifactMismatch, len(table.Records), len(matrix))
	}
	for i, row := range matrix {
		if len(row) != enc.Width() {
			return nil, fmt.Errorf("%w: matrix row %d has %d columns, encoder width is %d",
				domain.ErrArtifactMismatch, i, len(row), enc.Width())
		}
	}
	return &Bundle{table: table, matrix: matrix, enc: enc, fp: fingerprint(enc, matrix)}, nil
}

// Records returns the cleaned records in row order.
func (b *Bundle) Records() []domain.Record { return b.table.Records }

// Table returns the cleaned table.
func (b *Bundle) Table() *domain.CleanedTable { return b.table }

// Matrix returns the feature rows; Matrix()[i] belongs to Records()[i].
func (b *Bundle) Matrix() [][]float64 { return b.matrix }

// Encoder returns the fitted encoder.
func (b *Bundle) Encoder() *encode.Encoder { return b.enc }

// Fingerprint identifies the bundle contents.
func (b *Bundle) Fingerprint() string { return b.fp }

func fingerprint(enc *encode.Encoder, matrix [][]float64) string {
	h := sha256.New()
	h.Write([]byte(enc.Fingerprint()))
	var buf [8]byte
	for _, row := range matrix {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:12])
}

// Load reads the three artifacts from dir and verifies that they describe the
// same rows: equal row counts, identical row ids in the same order and a matrix
// width equal to the encoder width.
func Load(dir string, names Names) (*Bundle, error) {
	cleanedPath, matrixPath, encoderPath := names.WithDefaults().Paths(dir)

	var table *domain.CleanedTable
	if err := readFile(cleanedPath, func(f *os.File) (err error) {
		table, err = ReadCleaned(f)
		return err
	}); err != nil {
		return nil, err
	}

	var m *Matrix
	if err := readFile(matrixPath, func(f *os.File) (err error) {
		m, err = ReadMatrix(f)
		return err
	}); err != nil {
		return nil, err
	}

	var enc *encode.Encoder
	if err := readFile(encoderPath, func(f *os.File) (err error) {
		enc, err = ReadEncoder(f)
		return err
	}); err != nil {
		return nil, err
	}

	if len(m.IDs) != len(table.Records) {
		return nil, fmt.Errorf("%w: cleaned table has %d rows, feature matrix has %d",
			domain.ErrArtifactMismatch, len(table.Records), len(m.IDs))
	}
	for i, id := range m.IDs {
		if table.Records[i].RowID != id {
			return nil, fmt.Errorf("%w: row %d has id %d in cleaned table and %d in feature matrix",
				domain.ErrArtifactMismatch, i, table.Records[i].RowID, id)
		}
	}
	if len(m.Columns) != enc.Width() {
		return nil, fmt.Errorf("%w: feature matrix has %d columns, encoder width is %d",
			domain.ErrArtifactMismatch, len(m.Columns), enc.Width())
	}

	return NewBundle(table, enc, m.Rows)
}

func readFile(path string, read func(f *os.File) error) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := read(f); err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return nil
}
