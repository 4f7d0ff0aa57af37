package service

import (
	"fmt"
	"strings"
)

// ValidationError reports user-correctable input problems as an ordered map
// from field name to messages. Validation collects every violation before
// failing so the caller sees the complete picture in one response, not one
// violation per round trip.
type ValidationError struct {
	fields map[string][]string
	order  []string
}

// NewValidationError creates an empty ValidationError.
// Use Add to accumulate violations and Err to convert to an error value.
func NewValidationError() *ValidationError {
	return &ValidationError{
		fields: make(map[string][]string),
	}
}

// Add records a violation message against the given field.
// Field insertion order is preserved.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], message)
}

// HasErrors reports whether any violation has been recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.fields) > 0
}

// Err returns e as an error when violations exist, or nil otherwise.
// This keeps the accumulate-then-check call sites free of typed-nil traps.
func (e *ValidationError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Fields returns the field name to messages map.
// The returned map must not be mutated by callers.
func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

// FieldNames returns the field names in insertion order.
func (e *ValidationError) FieldNames() []string {
	return e.order
}

// Messages returns all violation messages, in field insertion order.
func (e *ValidationError) Messages() []string {
	var messages []string
	for _, field := range e.order {
		messages = append(messages, e.fields[field]...)
	}
	return messages
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return "validation failed"
	}

	var parts []string
	for _, field := range e.order {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
