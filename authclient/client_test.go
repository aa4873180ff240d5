package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/authfront/errors"
	"github.com/kbukum/authfront/identity"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/session"
)

// fakeService is a scripted identity.Service.
type fakeService struct {
	mu sync.Mutex

	signUp     func(identity.SignUpRequest) (session.Session, error)
	signIn     func(identity.SignInRequest) (session.Session, error)
	signOutErr error
	current    *session.Session
	getErr     error

	calls map[string]int
}

func newFake() *fakeService {
	return &fakeService{calls: make(map[string]int)}
}

func (f *fakeService) count(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeService) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeService) SignUp(_ context.Context, req identity.SignUpRequest) (session.Session, error) {
	f.count("sign-up")
	return f.signUp(req)
}

func (f *fakeService) SignIn(_ context.Context, req identity.SignInRequest) (session.Session, error) {
	f.count("sign-in")
	return f.signIn(req)
}

func (f *fakeService) SignOut(context.Context) error {
	f.count("sign-out")
	return f.signOutErr
}

func (f *fakeService) GetSession(context.Context) (session.Session, bool, error) {
	f.count("get-session")
	if f.getErr != nil {
		return session.Session{}, false, f.getErr
	}
	if f.current == nil {
		return session.Session{}, false, nil
	}
	return *f.current, true, nil
}

func newClient(svc identity.Service) (*Client, *session.Store) {
	store := session.NewStore()
	return New(svc, store, logger.Nop()), store
}

func TestClient_SignIn_CachesSession(t *testing.T) {
	svc := newFake()
	svc.signIn = func(req identity.SignInRequest) (session.Session, error) {
		if req.Email != "a@b.com" || req.Password != "secret12" {
			t.Errorf("unexpected request %+v", req)
		}
		return session.Session{UserID: "u1", Name: "Ann", Email: "a@b.com"}, nil
	}
	c, store := newClient(svc)

	s, err := c.SignIn(context.Background(), "a@b.com", "secret12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := session.Session{UserID: "u1", Name: "Ann", Email: "a@b.com"}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
	cached, ok := store.Current()
	if !ok || cached != want {
		t.Errorf("cache = %+v (ok=%v), want %+v", cached, ok, want)
	}
	if cur, ok := c.CurrentSession(); !ok || cur != want {
		t.Errorf("CurrentSession = %+v", cur)
	}
}

func TestClient_SignUp_FailureLeavesCache(t *testing.T) {
	svc := newFake()
	svc.signUp = func(identity.SignUpRequest) (session.Session, error) {
		return session.Session{}, errors.AlreadyExists("Email already registered")
	}
	c, store := newClient(svc)
	prior := session.Session{UserID: "u0", Name: "Old"}
	store.Set(prior)

	_, err := c.SignUp(context.Background(), "Ann", "a@b.com", "secret12")
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %v", err)
	}
	if appErr.Message != "Email already registered" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if cur, _ := store.Current(); cur != prior {
		t.Errorf("cache changed on failure: %+v", cur)
	}
	if n := svc.Calls("sign-up"); n != 1 {
		t.Errorf("expected a single attempt, got %d", n)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode errors.ErrorCode
		wantKind errors.Kind
		wantMsg  string
	}{
		{"app error passes through", errors.InvalidCredentials(""), errors.ErrCodeInvalidCredentials, errors.KindAuth, "Invalid email or password"},
		{"deadline", context.DeadlineExceeded, errors.ErrCodeTimeout, errors.KindTransport, "The request took too long. Please try again."},
		{"plain error", stderrors.New("boom"), errors.ErrCodeInternal, errors.KindTransport, errors.MessageGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFake()
			svc.signIn = func(identity.SignInRequest) (session.Session, error) {
				return session.Session{}, tc.err
			}
			c, _ := newClient(svc)

			_, err := c.SignIn(context.Background(), "a@b.com", "p")
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected *errors.AppError, got %T", err)
			}
			if appErr.Code != tc.wantCode || appErr.Kind != tc.wantKind {
				t.Errorf("got %s/%s, want %s/%s", appErr.Code, appErr.Kind, tc.wantCode, tc.wantKind)
			}
			if appErr.DisplayMessage() != tc.wantMsg {
				t.Errorf("message = %q, want %q", appErr.DisplayMessage(), tc.wantMsg)
			}
		})
	}
}

func TestClient_FailureLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{"rejected credentials", errors.InvalidCredentials(""), "warn", "Authentication failed"},
		{"timeout", errors.Timeout("sign-in"), "error", "Identity service timed out"},
		{"unreachable", errors.ConnectionFailed("identity service", stderrors.New("refused")), "error", "Identity service unreachable"},
		{"unexpected", stderrors.New("boom"), "error", "Authentication failed unexpectedly"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFake()
			svc.signIn = func(identity.SignInRequest) (session.Session, error) {
				return session.Session{}, tc.err
			}
			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf)
			c := New(svc, session.NewStore(), log)

			if _, err := c.SignIn(context.Background(), "a@b.com", "p"); err == nil {
				t.Fatal("expected an error")
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
				t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
			}
			if entry["level"] != tc.wantLevel || entry["message"] != tc.wantMsg {
				t.Errorf("logged %v %q, want %s %q", entry["level"], entry["message"], tc.wantLevel, tc.wantMsg)
			}
			if entry[logger.FieldOperation] != "sign-in" {
				t.Errorf("operation = %v", entry[logger.FieldOperation])
			}
		})
	}
}

func TestClient_SignOut_ClearsCache(t *testing.T) {
	tests := []struct {
		name    string
		svcErr  error
		wantErr bool
	}{
		{"service ok", nil, false},
		{"service fails", errors.ServiceUnavailable("identity service"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFake()
			svc.signOutErr = tc.svcErr
			c, store := newClient(svc)
			store.Set(session.Session{UserID: "u1"})

			err := c.SignOut(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if _, ok := store.Current(); ok {
				t.Error("expected cache to be cleared")
			}
		})
	}
}

func TestClient_Refresh(t *testing.T) {
	svc := newFake()
	c, store := newClient(svc)

	// no session at the service clears a stale cache
	store.Set(session.Session{UserID: "stale"})
	if _, ok, err := c.Refresh(context.Background()); ok || err != nil {
		t.Fatalf("expected no session, ok=%v err=%v", ok, err)
	}
	if _, ok := store.Current(); ok {
		t.Error("expected stale cache to be cleared")
	}

	svc.current = &session.Session{UserID: "u1", Name: "Ann", ExpiresAt: time.Now().Add(time.Hour)}
	s, ok, err := c.Refresh(context.Background())
	if err != nil || !ok || s.UserID != "u1" {
		t.Fatalf("unexpected refresh result %+v ok=%v err=%v", s, ok, err)
	}

	// errors leave the cache alone
	svc.getErr = errors.ServiceUnavailable("identity service")
	if _, _, err := c.Refresh(context.Background()); err == nil {
		t.Error("expected error")
	}
	if cur, ok := store.Current(); !ok || cur.UserID != "u1" {
		t.Error("cache must survive a failed refresh")
	}
}

func TestClient_Refresh_ExpiredSessionReadsAbsent(t *testing.T) {
	svc := newFake()
	svc.current = &session.Session{UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}
	c, _ := newClient(svc)

	if _, ok, err := c.Refresh(context.Background()); ok || err != nil {
		t.Errorf("expired session must read as absent, ok=%v err=%v", ok, err)
	}
}

func TestClient_Subscribe(t *testing.T) {
	svc := newFake()
	svc.signIn = func(identity.SignInRequest) (session.Session, error) {
		return session.Session{UserID: "u1"}, nil
	}
	c, _ := newClient(svc)

	var states []bool
	cancel := c.Subscribe(func(_ session.Session, ok bool) { states = append(states, ok) })
	defer cancel()

	c.SignIn(context.Background(), "a@b.com", "p")
	c.SignOut(context.Background())

	if len(states) != 2 || !states[0] || states[1] {
		t.Errorf("unexpected notifications %v", states)
	}
}
