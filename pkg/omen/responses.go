package omen

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

// QueryResponse is the common surface of the three response wrappers. Every
// wrapper exposes the raw response for access to status code and headers.
type QueryResponse interface {
	RawResponse() *Response
}

// JSONResponse wraps a response whose body parsed as JSON.
type JSONResponse struct {
	// Data is the decoded body, as produced by encoding/json into any.
	Data any

	raw *Response
}

// NewJSONResponse creates a JSONResponse over an already-decoded body.
func NewJSONResponse(data any, raw *Response) *JSONResponse {
	return &JSONResponse{Data: data, raw: raw}
}

// RawResponse returns the underlying response.
func (r *JSONResponse) RawResponse() *Response {
	return r.raw
}

// Decode unmarshals the raw body into v for callers that want a typed view
// instead of the generic Data value.
func (r *JSONResponse) Decode(v any) error {
	err := json.Unmarshal(r.raw.Body, v)
	if err != nil {
		return fmt.Errorf("decoding JSON response: %w", err)
	}

	return nil
}

// CSVResponse wraps a response served with a CSV content type.
type CSVResponse struct {
	// Text is the decoded response body.
	Text string

	raw *Response
}

// NewCSVResponse creates a CSVResponse over the decoded body text.
func NewCSVResponse(text string, raw *Response) *CSVResponse {
	return &CSVResponse{Text: text, raw: raw}
}

// RawResponse returns the underlying response.
func (r *CSVResponse) RawResponse() *Response {
	return r.raw
}

// Records parses the body as CSV records.
func (r *CSVResponse) Records() ([][]string, error) {
	records, err := csv.NewReader(bytes.NewReader([]byte(r.Text))).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV records: %w", err)
	}

	return records, nil
}

// TextResponse wraps any other non-JSON response.
type TextResponse struct {
	// Text is the decoded response body.
	Text string

	raw *Response
}

// NewTextResponse creates a TextResponse over the decoded body text.
func NewTextResponse(text string, raw *Response) *TextResponse {
	return &TextResponse{Text: text, raw: raw}
}

// RawResponse returns the underlying response.
func (r *TextResponse) RawResponse() *Response {
	return r.raw
}

// JSONValidator is a hook run against the decoded body of every JSON
// response before it is handed to the caller. The default is a no-op.
type JSONValidator func(data any) error
