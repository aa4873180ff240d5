package authclient

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/authfront/errors"
	"github.com/kbukum/authfront/httpclient"
	"github.com/kbukum/authfront/identity"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/session"
)

// Client wraps an identity.Service and keeps the session store in sync.
type Client struct {
	svc   identity.Service
	store *session.Store
	log   *logger.Logger
}

// New creates a Client. store is shared with every reader of the session.
func New(svc identity.Service, store *session.Store, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		svc:   svc,
		store: store,
		log:   log.WithComponent("authclient"),
	}
}

// SignUp creates an account. On success the new session is cached.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (session.Session, error) {
	s, err := c.svc.SignUp(ctx, identity.SignUpRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return session.Session{}, c.fail(ctx, "sign-up", email, err)
	}
	return c.establish(ctx, "sign-up", s), nil
}

// SignIn authenticates. On success the new session is cached.
func (c *Client) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	s, err := c.svc.SignIn(ctx, identity.SignInRequest{Email: email, Password: password})
	if err != nil {
		return session.Session{}, c.fail(ctx, "sign-in", email, err)
	}
	return c.establish(ctx, "sign-in", s), nil
}

// SignOut ends the session. The cache is cleared whatever the service
// answers; a service failure is still returned.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.svc.SignOut(ctx)
	c.store.Clear()
	if err != nil {
		appErr := classify(ctx, "sign-out", err)
		c.log.WithContext(ctx).WithError(appErr).Warn("Sign-out failed at the identity service; local session cleared",
			logger.Fields(logger.FieldErrorCode, string(appErr.Code)))
		return appErr
	}
	c.log.WithContext(ctx).Info("Signed out")
	return nil
}

// CurrentSession returns the cached session without a network round trip.
func (c *Client) CurrentSession() (session.Session, bool) {
	return c.store.Current()
}

// Refresh asks the identity service for the current session and replaces
// the cache with the answer. On error the cache is left untouched.
func (c *Client) Refresh(ctx context.Context) (session.Session, bool, error) {
	s, ok, err := c.svc.GetSession(ctx)
	if err != nil {
		appErr := classify(ctx, "get-session", err)
		c.log.WithContext(ctx).WithError(appErr).Debug("Session refresh failed")
		return session.Session{}, false, appErr
	}
	if !ok {
		c.store.Clear()
		return session.Session{}, false, nil
	}
	s = s.WithDerivedExpiry()
	c.store.Set(s)
	cur, ok := c.store.Current()
	return cur, ok, nil
}

// Subscribe registers fn for session changes. See session.Store.Subscribe.
func (c *Client) Subscribe(fn session.Listener) (cancel func()) {
	return c.store.Subscribe(fn)
}

func (c *Client) establish(ctx context.Context, op string, s session.Session) session.Session {
	s = s.WithDerivedExpiry()
	c.store.Set(s)
	c.log.WithContext(ctx).Info("Session established", logger.Fields(
		logger.FieldOperation, op,
		logger.FieldUserID, s.UserID,
	))
	return s
}

func (c *Client) fail(ctx context.Context, op, email string, err error) *errors.AppError {
	appErr := classify(ctx, op, err)
	fields := logger.Fields(
		logger.FieldOperation, op,
		logger.FieldEmail, email,
		logger.FieldErrorCode, string(appErr.Code),
		logger.FieldError, appErr.Error(),
	)
	log := c.log.WithContext(ctx)
	switch {
	case appErr.Code == errors.ErrCodeInternal:
		log.Error("Authentication failed unexpectedly", fields)
	case httpclient.IsTimeout(appErr):
		log.Error("Identity service timed out", fields)
	case httpclient.IsTransport(appErr):
		log.Error("Identity service unreachable", fields)
	default:
		log.Warn("Authentication failed", fields)
	}
	return appErr
}

// classify turns any service error into an *errors.AppError.
func classify(ctx context.Context, op string, err error) *errors.AppError {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return errors.Timeout(op).WithCause(err)
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.ConnectionFailed("identity service", err)
	}
	return errors.Internal(err)
}
