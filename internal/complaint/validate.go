package complaint

import (
	"strings"
)

// Field names a required complaint input.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	if len(names) == 1 {
		return names[0] + " is required"
	}
	return strings.Join(names, ", ") + " are required"
}

// Has reports whether f is among the failed fields.
func (e *ValidationError) Has(f Field) bool {
	for _, field := range e.Fields {
		if field == f {
			return true
		}
	}
	return false
}

// Validate checks the user-supplied fields of a draft. It returns nil or a
// *ValidationError.
func Validate(title, description string, category Category) error {
	var missing []Field
	if strings.TrimSpace(title) == "" {
		missing = append(missing, FieldTitle)
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, FieldDescription)
	}
	if !category.Valid() {
		missing = append(missing, FieldCategory)
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
