package registry

import (
	"fmt"
	"strings"
)

// RegistrationError indicates a duplicate (kind, name) pair at bootstrap.
// It is construction-time and fatal; the server must not start.
type RegistrationError struct {
	Kind Kind
	Name string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Kind, e.Name)
}

// NotFoundError indicates an invocation of an unknown (kind, name) pair.
type NotFoundError struct {
	Kind Kind
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Violation is a single field-level schema violation.
type Violation struct {
	Field   string // JSON pointer into the arguments, "" for the root
	Message string
}

// ValidationError indicates that invocation arguments failed the declared
// input contract. The handler never ran.
type ValidationError struct {
	Kind       Kind
	Name       string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		field := v.Field
		if field == "" {
			field = "(root)"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, v.Message))
	}
	return fmt.Sprintf("invalid arguments for %s %q: %s", e.Kind, e.Name, strings.Join(parts, "; "))
}
