package identity

import (
	"context"
	"sync"

	"github.com/kbukum/authfront/httpclient"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/session"
)

const (
	headerRequestID = "X-Request-ID"
	// headerAuthToken is how better-auth's bearer plugin returns a token.
	headerAuthToken = "Set-Auth-Token"
)

// HTTPService implements Service over JSON/HTTP.
type HTTPService struct {
	client *httpclient.Client
	paths  Paths
	log    *logger.Logger

	mu    sync.RWMutex
	token string
}

var _ Service = (*HTTPService)(nil)

// NewHTTPService creates a Service for the identity service at cfg.BaseURL.
func NewHTTPService(cfg Config, log *logger.Logger) (*HTTPService, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &HTTPService{
		paths: cfg.Paths,
		log:   log.WithComponent("identity"),
	}

	hc := cfg.httpConfig()
	hc.Auth = httpclient.BearerSource(s.currentToken)
	client, err := httpclient.New(hc)
	if err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

// SignUp implements Service.
func (s *HTTPService) SignUp(ctx context.Context, req SignUpRequest) (session.Session, error) {
	return s.authenticate(ctx, s.paths.SignUp, req)
}

// SignIn implements Service.
func (s *HTTPService) SignIn(ctx context.Context, req SignInRequest) (session.Session, error) {
	return s.authenticate(ctx, s.paths.SignIn, req)
}

// SignOut implements Service. Local credentials are dropped whatever the
// service answers.
func (s *HTTPService) SignOut(ctx context.Context) error {
	defer s.forget()
	_, err := httpclient.Post[map[string]any](ctx, s.client, s.paths.SignOut, map[string]any{}, s.requestOptions(ctx)...)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Debug("sign-out request failed")
		return err
	}
	return nil
}

// GetSession implements Service. An unauthorized answer is reported as no
// session rather than as an error.
func (s *HTTPService) GetSession(ctx context.Context) (session.Session, bool, error) {
	resp, err := httpclient.Get[authResponse](ctx, s.client, s.paths.Session, s.requestOptions(ctx)...)
	if err != nil {
		if httpclient.IsUnauthorized(err) {
			s.setToken("")
			return session.Session{}, false, nil
		}
		return session.Session{}, false, err
	}
	if resp.Data.User == nil {
		return session.Session{}, false, nil
	}

	sess, err := resp.Data.toSession(resp.Headers[headerAuthToken])
	if err != nil {
		return session.Session{}, false, err
	}
	if sess.Token != "" {
		s.setToken(sess.Token)
	}
	return sess, true, nil
}

func (s *HTTPService) authenticate(ctx context.Context, path string, body any) (session.Session, error) {
	resp, err := httpclient.Post[authResponse](ctx, s.client, path, body, s.requestOptions(ctx)...)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := resp.Data.toSession(resp.Headers[headerAuthToken])
	if err != nil {
		return session.Session{}, err
	}
	s.setToken(sess.Token)
	s.log.WithContext(ctx).Debug("identity service accepted credentials",
		logger.Fields(logger.FieldUserID, sess.UserID, logger.FieldPath, path))
	return sess, nil
}

func (s *HTTPService) requestOptions(ctx context.Context) []httpclient.RequestOption {
	if id := logger.RequestIDFromContext(ctx); id != "" {
		return []httpclient.RequestOption{httpclient.WithHeader(headerRequestID, id)}
	}
	return nil
}

func (s *HTTPService) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *HTTPService) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *HTTPService) forget() {
	s.setToken("")
	s.client.ClearCookies()
}
