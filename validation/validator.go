package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/authfront/errors"
)

// FieldError represents a validation failure for a single field.
type FieldError struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Errors maps a field name to its failure. An empty mapping means valid.
type Errors map[string]FieldError

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ToAppError converts the failures into a single validation AppError,
// or nil if there are none.
func (e Errors) ToAppError() *errors.AppError {
	if e.Valid() {
		return nil
	}

	fields := e.Fields()
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = fmt.Sprintf("%s: %s", f, e[f].Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": map[string]FieldError(e),
	}
	return appErr
}

// Validator collects field errors. A field holds at most one error; a later
// error for the same field replaces the earlier one.
type Validator struct {
	errors Errors
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make(Errors),
	}
}

// AddError records an error for field.
func (v *Validator) AddError(field string, code errors.ErrorCode, message string) {
	v.errors[field] = FieldError{Code: code, Message: message}
}

// Errors returns a copy of the collected errors.
func (v *Validator) Errors() Errors {
	out := make(Errors, len(v.errors))
	for k, fe := range v.errors {
		out[k] = fe
	}
	return out
}

// Custom records message for field when condition is false.
func (v *Validator) Custom(condition bool, field string, code errors.ErrorCode, message string) *Validator {
	if !condition {
		v.AddError(field, code, message)
	}
	return v
}
