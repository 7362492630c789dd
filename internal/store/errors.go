package store

import (
	"fmt"
	"strings"
)

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// MalformedDataError indicates the persisted CV record violates the
// data schema. The whole load fails; no partial record is returned.
type MalformedDataError struct {
	Path   string
	Errors []FieldError
}

func (e *MalformedDataError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("malformed CV data in %s:\n", e.Path))
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// EntryError indicates an entry failed shape validation before an
// add-operation and was not appended.
type EntryError struct {
	Section string
	Cause   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("invalid %s entry: %v", e.Section, e.Cause)
}

func (e *EntryError) Unwrap() error {
	return e.Cause
}
