package loader

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// JSONReader decodes exactly one JSON document from r. Numbers are kept as
// json.Number. Trailing content after the document is malformed input.
func JSONReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &MalformedInputError{Format: "json", Err: err}
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, &MalformedInputError{Format: "json", Err: err}
	}
	return v, nil
}

// JSONBytes decodes exactly one JSON document from b.
func JSONBytes(b []byte) (any, error) { return JSONReader(bytes.NewReader(b)) }
