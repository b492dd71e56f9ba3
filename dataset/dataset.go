package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxBytes bounds the size of a dataset file.
const DefaultMaxBytes int64 = 32 << 20

var (
	// ErrEmpty is wrapped by ParseError when the source holds no JSON value.
	ErrEmpty = errors.New("dataset: empty input")

	// ErrTooLarge is wrapped by ParseError when the source exceeds the limit.
	ErrTooLarge = errors.New("dataset: input too large")

	// ErrTrailingData is wrapped by ParseError when more than one JSON value
	// follows in the source.
	ErrTrailingData = errors.New("dataset: trailing data after JSON value")
)

// ParseError reports dataset content that is not a valid JSON document.
type ParseError struct {
	// Source names the input (file name, "upload", ...).
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Dataset is an immutable, validated JSON document.
type Dataset struct {
	name string
	doc  json.RawMessage
}

// Name returns the source name the dataset was loaded from.
func (d *Dataset) Name() string { return d.name }

// Bytes returns the compacted JSON document. The slice must not be modified.
func (d *Dataset) Bytes() []byte { return d.doc }

// Size returns the length of the compacted document in bytes.
func (d *Dataset) Size() int { return len(d.doc) }

// MarshalJSON embeds the document unchanged, which lets a Dataset sit
// directly in request bodies.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return d.doc, nil
}

// Parse reads r completely and validates it as a single JSON value.
// maxBytes <= 0 selects DefaultMaxBytes. On failure the returned error is a
// *ParseError.
func Parse(source string, r io.Reader, maxBytes int64) (*Dataset, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if int64(len(raw)) > maxBytes {
		return nil, &ParseError{Source: source, Err: ErrTooLarge}
	}
	return ParseBytes(source, raw)
}

// ParseBytes validates raw as a single JSON value.
func ParseBytes(source string, raw []byte) (*Dataset, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Source: source, Err: ErrEmpty}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var probe any
	if err := dec.Decode(&probe); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Source: source, Err: ErrTrailingData}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return &Dataset{name: source, doc: buf.Bytes()}, nil
}
