// Package transform holds the pure normalization and derivation functions of
// the pipeline. Every function here maps raw provider JSON (or an already
// normalized series) to typed records; the only validation performed is
// presence of required fields, reported as *SchemaError.
package transform

import "fmt"

// SchemaError reports a provider payload that is missing a required field or
// cannot be coerced to the expected type. It is never returned for values
// that are merely out of range.
type SchemaError struct {
	Source string // "weather" or "prices"
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s payload: field %q: %s", e.Source, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s payload: missing required field %q", e.Source, e.Field)
}

func missingField(source, field string) *SchemaError {
	return &SchemaError{Source: source, Field: field}
}

func badField(source, field, reason string) *SchemaError {
	return &SchemaError{Source: source, Field: field, Reason: reason}
}
