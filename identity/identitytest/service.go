package identitytest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BasePath is the route prefix the endpoints are mounted under.
const BasePath = "/api/auth"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "better-auth.session_token"

// Endpoint paths relative to BasePath.
const (
	PathSignUp  = "/sign-up/email"
	PathSignIn  = "/sign-in/email"
	PathSignOut = "/sign-out"
	PathSession = "/get-session"
)

const minPasswordLength = 8

type user struct {
	id           string
	name         string
	email        string
	passwordHash []byte
}

type failure struct {
	status  int
	code    string
	message string
}

// Service is an in-memory identity service.
type Service struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu       sync.Mutex
	users    map[string]*user     // by lower-cased email
	sessions map[string]time.Time // token id -> expiry
	failures map[string]failure
	calls    map[string]int
	delay    time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithSecret sets the HMAC key used to sign tokens.
func WithSecret(secret string) Option {
	return func(s *Service) { s.secret = []byte(secret) }
}

// WithTTL sets the session lifetime (default 7 days).
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithBcryptCost sets the bcrypt cost (default bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates an empty identity service.
func New(opts ...Option) *Service {
	s := &Service{
		secret:   []byte(uuid.NewString()),
		ttl:      7 * 24 * time.Hour,
		cost:     bcrypt.MinCost,
		now:      time.Now,
		users:    make(map[string]*user),
		sessions: make(map[string]time.Time),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServer starts the service on a local httptest server. The caller must
// Close the server.
func NewServer(opts ...Option) (*Service, *httptest.Server) {
	s := New(opts...)
	return s, httptest.NewServer(s.Handler())
}

// Handler returns a gin engine serving the endpoints under BasePath.
func (s *Service) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	s.Register(engine.Group(BasePath))
	return engine
}

// Register mounts the endpoints on r.
func (s *Service) Register(r gin.IRouter) {
	r.POST(PathSignUp, s.track(PathSignUp), s.signUp)
	r.POST(PathSignIn, s.track(PathSignIn), s.signIn)
	r.POST(PathSignOut, s.track(PathSignOut), s.signOut)
	r.GET(PathSession, s.track(PathSession), s.getSession)
}

// AddUser registers an account directly.
func (s *Service) AddUser(name, email, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.createLocked(name, email, password)
	if err != nil {
		return "", err
	}
	return u.id, nil
}

// FailNext makes the next call to path answer with status and an error
// body {code, message}.
func (s *Service) FailNext(path string, status int, code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, code: code, message: message}
}

// SetDelay makes every call wait d before answering.
func (s *Service) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Calls returns how many requests path has received.
func (s *Service) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// ActiveSessions returns the number of unexpired, unrevoked sessions.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := s.now()
	for _, exp := range s.sessions {
		if now.Before(exp) {
			n++
		}
	}
	return n
}

// track counts the call and applies delay and injected failures.
func (s *Service) track(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.calls[path]++
		delay := s.delay
		f, failing := s.failures[path]
		delete(s.failures, path)
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		if failing {
			abortWithError(c, f.status, f.code, f.message)
			return
		}
		c.Next()
	}
}

var errExists = errors.New("user already exists")

func (s *Service) createLocked(name, email, password string) (*user, error) {
	key := strings.ToLower(email)
	if _, ok := s.users[key]; ok {
		return nil, errExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	u := &user{id: uuid.NewString(), name: name, email: email, passwordHash: hash}
	s.users[key] = u
	return u, nil
}

// issueLocked signs a token for u and records the session.
func (s *Service) issueLocked(u *user) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	jti := uuid.NewString()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.id,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	s.sessions[jti] = exp
	return token, exp, nil
}

// resolveLocked verifies token and returns its user and session id.
func (s *Service) resolveLocked(token string) (*user, string, time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, "", time.Time{}, false
	}
	exp, ok := s.sessions[claims.ID]
	if !ok {
		return nil, "", time.Time{}, false
	}
	for _, u := range s.users {
		if u.id == claims.Subject {
			return u, claims.ID, exp, true
		}
	}
	return nil, "", time.Time{}, false
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, "@")
}
