package encode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

// stateVersion is bumped on incompatible changes of the serialized layout.
const stateVersion = 1

type fieldState struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

type state struct {
	Version int          `json:"version"`
	Numeric []string     `json:"numeric"`
	Fields  []fieldState `json:"fields"`
}

// MarshalJSON serializes the category-to-column mapping.
func (e *Encoder) MarshalJSON() ([]byte, error) {
	st := state{Version: stateVersion, Numeric: NumericColumns}
	for i := range e.blocks {
		st.Fields = append(st.Fields, fieldState{
			Name:       e.blocks[i].name,
			Categories: e.blocks[i].categories,
		})
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal encoder: %w", err)
	}
	return data, nil
}

// Decode restores an encoder serialized by MarshalJSON.
func Decode(data []byte) (*Encoder, error) {
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: decode encoder: %w", domain.ErrInputFormat, err)
	}
	if st.Version != stateVersion {
		return nil, fmt.Errorf("%w: unsupported encoder version %d", domain.ErrInputFormat, st.Version)
	}
	if !slices.Equal(st.Numeric, NumericColumns) {
		return nil, fmt.Errorf("%w: encoder numeric columns %v, want %v",
			domain.ErrInputFormat, st.Numeric, NumericColumns)
	}
	if len(st.Fields) != len(CategoricalColumns) {
		return nil, fmt.Errorf("%w: encoder has %d fields, want %d",
			domain.ErrInputFormat, len(st.Fields), len(CategoricalColumns))
	}
	for i, f := range st.Fields {
		if f.Name != CategoricalColumns[i] {
			return nil, fmt.Errorf("%w: encoder field %d is %q, want %q",
				domain.ErrInputFormat, i, f.Name, CategoricalColumns[i])
		}
		for j := 1; j < len(f.Categories); j++ {
			if f.Categories[j-1] >= f.Categories[j] {
				return nil, fmt.Errorf("%w: encoder field %q categories are not sorted and unique",
					domain.ErrInputFormat, f.Name)
			}
		}
	}
	return newEncoder(st.Fields[0].Categories, st.Fields[1].Categories), nil
}

// WriteTo writes the serialized encoder to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	data, err := e.MarshalJSON()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("write encoder: %w", err)
	}
	return int64(n), nil
}

// Read decodes an encoder from r.
func Read(r io.Reader) (*Encoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read encoder: %w", err)
	}
	return Decode(data)
}

// Fingerprint is a stable digest of the column layout.
func (e *Encoder) Fingerprint() string {
	data, err := e.MarshalJSON()
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:8])
}
