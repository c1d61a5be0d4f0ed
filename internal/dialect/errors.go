package dialect

import "fmt"

// FieldUnsupportedError is returned when a payload carries a field that the
// target dialect has no representation for. Fields the caller explicitly set
// are never silently dropped.
type FieldUnsupportedError struct {
	Concept string
	Field   string
	Dialect Dialect
}

func (e *FieldUnsupportedError) Error() string {
	return fmt.Sprintf("dialect: %s.%s is not supported by the %s backend", e.Concept, e.Field, e.Dialect)
}

// TypeError is returned when a field value has the wrong dynamic type for
// its transform.
type TypeError struct {
	Field string
	Want  string
	Got   any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("dialect: %s must be a %s, got %T", e.Field, e.Want, e.Got)
}
