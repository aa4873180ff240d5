package form

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/authfront/errors"
	"github.com/kbukum/authfront/validation"
)

func TestNew(t *testing.T) {
	s := New(validation.SignUp)
	if _, err := uuid.Parse(s.ID()); err != nil {
		t.Errorf("expected uuid id, got %q", s.ID())
	}
	if s.Kind() != validation.SignUp {
		t.Errorf("unexpected kind %v", s.Kind())
	}
	v := s.Snapshot()
	if v.Draft != (validation.Credentials{}) || v.Submitting || v.SubmissionError != nil || len(v.FieldErrors) != 0 {
		t.Errorf("new form must be empty, got %+v", v)
	}
	if New(validation.SignIn).ID() == s.ID() {
		t.Error("form ids must be unique")
	}
}

func TestState_SetField(t *testing.T) {
	s := New(validation.SignUp)
	fields := map[string]string{
		validation.FieldName:            "Ann",
		validation.FieldEmail:           "a@b.com",
		validation.FieldPassword:        "secret12",
		validation.FieldConfirmPassword: "secret12",
	}
	for f, v := range fields {
		if err := s.SetField(f, v); err != nil {
			t.Fatalf("SetField(%s): %v", f, err)
		}
	}

	want := validation.Credentials{Name: "Ann", Email: "a@b.com", Password: "secret12", ConfirmPassword: "secret12"}
	if got := s.Snapshot().Draft; got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := s.SetField("username", "x"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestState_SetFieldDoesNotRevalidate(t *testing.T) {
	s := New(validation.SignIn)
	s.SetFieldErrors(validation.Errors{"email": {Code: errors.ErrCodeInvalidFormat, Message: "Invalid email"}})
	s.SetField(validation.FieldEmail, "a@b.com")
	if got := s.Snapshot().FieldError("email"); got != "Invalid email" {
		t.Errorf("field error should persist until next validation, got %q", got)
	}
}

func TestState_SubmitLifecycle(t *testing.T) {
	s := New(validation.SignIn)
	s.SetFieldErrors(validation.Errors{"email": {Code: errors.ErrCodeInvalidFormat, Message: "Invalid email"}})
	s.EndSubmit(&SubmissionError{Message: "old"})

	if !s.BeginSubmit() {
		t.Fatal("first BeginSubmit must succeed")
	}
	v := s.Snapshot()
	if !v.Submitting || v.SubmissionError != nil || len(v.FieldErrors) != 0 {
		t.Errorf("BeginSubmit must set submitting and clear errors, got %+v", v)
	}

	if s.BeginSubmit() {
		t.Error("second BeginSubmit must be rejected while submitting")
	}

	s.EndSubmit(&SubmissionError{Message: "Email already registered", Code: "ALREADY_EXISTS"})
	v = s.Snapshot()
	if v.Submitting {
		t.Error("EndSubmit must clear submitting")
	}
	if v.SubmissionError == nil || v.SubmissionError.Message != "Email already registered" {
		t.Errorf("unexpected submission error %+v", v.SubmissionError)
	}

	if !s.BeginSubmit() {
		t.Fatal("BeginSubmit must succeed after EndSubmit")
	}
	s.EndSubmit(nil)
	if s.Snapshot().SubmissionError != nil {
		t.Error("successful EndSubmit must leave no submission error")
	}
}

func TestState_ClearPasswords(t *testing.T) {
	s := New(validation.SignUp)
	s.SetField(validation.FieldEmail, "a@b.com")
	s.SetField(validation.FieldPassword, "secret12")
	s.SetField(validation.FieldConfirmPassword, "secret12")
	s.ClearPasswords()

	d := s.Snapshot().Draft
	if d.Password != "" || d.ConfirmPassword != "" {
		t.Error("expected passwords to be cleared")
	}
	if d.Email != "a@b.com" {
		t.Error("other fields must be preserved")
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := New(validation.SignIn)
	s.SetFieldErrors(validation.Errors{"email": {Message: "Invalid email"}})
	s.EndSubmit(&SubmissionError{Message: "x"})

	v := s.Snapshot()
	delete(v.FieldErrors, "email")
	v.SubmissionError.Message = "changed"

	v2 := s.Snapshot()
	if v2.FieldError("email") == "" || v2.SubmissionError.Message != "x" {
		t.Error("mutating a view must not change the form")
	}
}

func TestState_BusyGuardConcurrent(t *testing.T) {
	s := New(validation.SignIn)
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.BeginSubmit() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if n := wins.Load(); n != 1 {
		t.Errorf("exactly one submission may begin, got %d", n)
	}
}
