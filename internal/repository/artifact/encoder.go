package artifact

import (
	"fmt"
	"io"

	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

// WriteEncoder writes the fitted encoder state as JSON.
func WriteEncoder(w io.Writer, enc *encode.Encoder) error {
	if _, err := enc.WriteTo(w); err != nil {
		return fmt.Errorf("write encoder: %w", err)
	}
	return nil
}

// ReadEncoder restores an encoder written by WriteEncoder.
func ReadEncoder(r io.Reader) (*encode.Encoder, error) {
	enc, err := encode.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read encoder: %w", err)
	}
	return enc, nil
}
