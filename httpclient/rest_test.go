package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/authfront/errors"
)

type testUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		json.NewEncoder(w).Encode(testUser{ID: "u1", Email: "a@b.com"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := Get[testUser](context.Background(), c, "/users/u1", WithQueryParam("page", "2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Data.Email != "a@b.com" {
		t.Errorf("expected a@b.com, got %s", resp.Data.Email)
	}
}

func TestPost_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-ID"); got != "r-1" {
			t.Errorf("expected X-Request-ID header, got %q", got)
		}
		var u testUser
		json.NewDecoder(r.Body).Decode(&u)
		u.ID = "u42"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(u)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := Post[testUser](context.Background(), c, "/users", testUser{Email: "x@y.z"}, WithHeader("X-Request-ID", "r-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if resp.Data.ID != "u42" || resp.Data.Email != "x@y.z" {
		t.Errorf("unexpected data %+v", resp.Data)
	}
}

func TestPost_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := Post[testUser](context.Background(), c, "/sign-out", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.ID != "" {
		t.Errorf("expected zero value, got %+v", resp.Data)
	}
}

func TestPost_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":"USER_ALREADY_EXISTS","message":"Email already registered"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := Post[testUser](context.Background(), c, "/sign-up/email", testUser{})
	if resp != nil {
		t.Error("expected no typed response on error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %v", err)
	}
	if appErr.Message != "Email already registered" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestGet_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	_, err := Get[testUser](context.Background(), c, "/")
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeExternalService {
		t.Errorf("expected EXTERNAL_SERVICE_ERROR, got %s", appErr.Code)
	}
}
