package identity

import (
	"context"

	"github.com/kbukum/authfront/session"
)

// SignUpRequest carries the fields of a new account.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest carries an email/password pair.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service is the identity service as seen by the client. Failures are
// returned as *errors.AppError.
type Service interface {
	// SignUp creates an account and returns the session it started.
	SignUp(ctx context.Context, req SignUpRequest) (session.Session, error)
	// SignIn authenticates and returns the new session.
	SignIn(ctx context.Context, req SignInRequest) (session.Session, error)
	// SignOut ends the current session.
	SignOut(ctx context.Context) error
	// GetSession returns the session the service currently recognizes.
	// ok is false when there is none.
	GetSession(ctx context.Context) (s session.Session, ok bool, err error)
}
