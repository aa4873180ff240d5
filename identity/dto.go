package identity

import (
	"fmt"
	"time"

	"github.com/kbukum/authfront/errors"
	"github.com/kbukum/authfront/session"
)

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionDTO struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// authResponse covers the sign-up, sign-in and get-session bodies:
// {token, user} or {session, user}.
type authResponse struct {
	Token   string      `json:"token"`
	User    *userDTO    `json:"user"`
	Session *sessionDTO `json:"session"`
}

// toSession converts a response body into a Session. headerToken is the
// token from a set-auth-token header, used when the body has none.
func (r authResponse) toSession(headerToken string) (session.Session, error) {
	if r.User == nil {
		return session.Session{}, errors.Unknown(fmt.Errorf("identity: response carried no user"))
	}

	s := session.Session{
		UserID: r.User.ID,
		Name:   r.User.Name,
		Email:  r.User.Email,
		Token:  r.Token,
	}
	if r.Session != nil {
		if r.Session.Token != "" {
			s.Token = r.Session.Token
		}
		s.ExpiresAt = r.Session.ExpiresAt
		if s.UserID == "" {
			s.UserID = r.Session.UserID
		}
	}
	if s.Token == "" {
		s.Token = headerToken
	}
	return s.WithDerivedExpiry(), nil
}
