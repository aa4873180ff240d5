// Package form holds the editable state of a sign-in or sign-up form.
package form

import (
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/authfront/validation"
)

// SubmissionError is the banner-level failure of the last submission.
type SubmissionError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}

// View is an immutable snapshot of a form for rendering.
type View struct {
	ID              string
	Kind            validation.FormKind
	Draft           validation.Credentials
	FieldErrors     validation.Errors
	Submitting      bool
	SubmissionError *SubmissionError
}

// FieldError returns the message for field, or "".
func (v View) FieldError(field string) string {
	return v.FieldErrors[field].Message
}

// State is the mutable state of one form instance. It is safe for
// concurrent use.
type State struct {
	id   string
	kind validation.FormKind

	mu          sync.Mutex
	draft       validation.Credentials
	fieldErrors validation.Errors
	submitting  bool
	submitErr   *SubmissionError
}

// New creates an empty form of the given kind.
func New(kind validation.FormKind) *State {
	return &State{
		id:          uuid.NewString(),
		kind:        kind,
		fieldErrors: validation.Errors{},
	}
}

// ID returns the form's correlation id.
func (s *State) ID() string { return s.id }

// Kind returns the form kind.
func (s *State) Kind() validation.FormKind { return s.kind }

// SetField updates one draft field. It does not re-validate.
func (s *State) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case validation.FieldName:
		s.draft.Name = value
	case validation.FieldEmail:
		s.draft.Email = value
	case validation.FieldPassword:
		s.draft.Password = value
	case validation.FieldConfirmPassword:
		s.draft.ConfirmPassword = value
	default:
		return fmt.Errorf("form: unknown field %q", field)
	}
	return nil
}

// SetFieldErrors replaces the field error mapping.
func (s *State) SetFieldErrors(errs validation.Errors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fieldErrors = maps.Clone(errs)
	if s.fieldErrors == nil {
		s.fieldErrors = validation.Errors{}
	}
}

// BeginSubmit marks the form as submitting and clears previous errors.
// It returns false without changing anything when a submission is already
// in flight.
func (s *State) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	s.submitErr = nil
	s.fieldErrors = validation.Errors{}
	return true
}

// EndSubmit marks the submission as finished and stores err (nil on success).
func (s *State) EndSubmit(err *SubmissionError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		cp := *err
		s.submitErr = &cp
		return
	}
	s.submitErr = nil
}

// ClearPasswords blanks the password and confirmation fields.
func (s *State) ClearPasswords() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Password = ""
	s.draft.ConfirmPassword = ""
}

// Submitting reports whether a submission is in flight.
func (s *State) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:          s.id,
		Kind:        s.kind,
		Draft:       s.draft,
		FieldErrors: maps.Clone(s.fieldErrors),
		Submitting:  s.submitting,
	}
	if s.submitErr != nil {
		cp := *s.submitErr
		v.SubmissionError = &cp
	}
	return v
}
