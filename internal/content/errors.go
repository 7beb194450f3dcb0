package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid matches every *ValidationError via errors.Is.
var ErrInvalid = errors.New("invalid page")

// FieldError is a human-readable problem attached to one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects field errors in the order they were found.
type ValidationError struct {
	Items []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, item.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field. Only the first message per field is kept.
func (e *ValidationError) Add(field, msg string) {
	if e.Field(field) != "" {
		return
	}
	e.Items = append(e.Items, FieldError{Field: field, Message: msg})
}

// Field returns the message recorded for field, or "".
func (e *ValidationError) Field(field string) string {
	for _, item := range e.Items {
		if item.Field == field {
			return item.Message
		}
	}
	return ""
}

// Fields returns the errors keyed by field name.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Items))
	for _, item := range e.Items {
		out[item.Field] = item.Message
	}
	return out
}

func (e *ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// FieldErr builds a single-field validation error.
func FieldErr(field, msg string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, msg)
	return ve
}
