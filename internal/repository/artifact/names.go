// Package artifact persists and loads the preprocessing outputs: the cleaned
// table, the feature matrix and the fitted encoder.
package artifact

import "path/filepath"

// Names holds the artifact file names inside one directory.
type Names struct {
	Cleaned string
	Matrix  string
	Encoder string
}

// DefaultNames returns the conventional file names.
func DefaultNames() Names {
	return Names{
		Cleaned: "cleaned_data.csv",
		Matrix:  "encoded_data.csv",
		Encoder: "encoder.json",
	}
}

// WithDefaults fills empty names with DefaultNames.
func (n Names) WithDefaults() Names {
	d := DefaultNames()
	if n.Cleaned == "" {
		n.Cleaned = d.Cleaned
	}
	if n.Matrix == "" {
		n.Matrix = d.Matrix
	}
	if n.Encoder == "" {
		n.Encoder = d.Encoder
	}
	return n
}

// Paths joins the names with dir.
func (n Names) Paths(dir string) (cleaned, matrix, encoder string) {
	return filepath.Join(dir, n.Cleaned), filepath.Join(dir, n.Matrix), filepath.Join(dir, n.Encoder)
}
