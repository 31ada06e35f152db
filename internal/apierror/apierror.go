// Package apierror provides the error types raised by the invoicing pipeline
// plus the standardized response envelopes returned to clients. All errors
// surfaced over HTTP go through this package to ensure consistency and to
// prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationFields wraps multiple field errors.
type ValidationFields struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationFields {
	return &ValidationFields{Detail: "Validation failed", Fields: fields}
}

// ── Domain error taxonomy ─────────────────────────────────────────────────────
// The invoice pipeline (importer → pricing → renderer) raises exactly four
// kinds of errors. All are terminal for the generation request that raised
// them: no retries, no partial documents.

// ValidationError reports a missing or invalid request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SchemaError reports an uploaded file that lacks an expected column or
// cannot be decoded as a supported tabular format.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Detail
}

// ParseError reports a cell that could not be coerced to the expected numeric
// type after normalization.
type ParseError struct {
	Row  int
	Cell string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse amount %q", e.Row, e.Cell)
}

// RenderError reports a document construction failure. A missing decorative
// asset (letterhead logo) is NOT a RenderError — rendering proceeds without it.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
