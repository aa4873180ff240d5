package flow

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/authfront/errors"
	"github.com/kbukum/authfront/form"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/observability"
	"github.com/kbukum/authfront/session"
	"github.com/kbukum/authfront/validation"
)

// Authenticator is the auth session client as used by the controller.
// *authclient.Client implements it.
type Authenticator interface {
	SignUp(ctx context.Context, name, email, password string) (session.Session, error)
	SignIn(ctx context.Context, email, password string) (session.Session, error)
	SignOut(ctx context.Context) error
}

// Outcome reports how a Submit call ended. The controller itself is back
// in Idle when Submit returns; Phase is the last phase the attempt reached.
type Outcome struct {
	Phase Phase
	// Busy is set when a submission was already in flight and nothing was done.
	Busy bool
	// FieldErrors holds the validation failures that stopped the attempt.
	FieldErrors validation.Errors
	// Session is the new session on Success.
	Session session.Session
	// Err is the failure on Failed.
	Err *errors.AppError
	// NavigatedTo is the route taken on Success.
	NavigatedTo string
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig sets submission behavior.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// WithRoutes sets navigation targets.
func WithRoutes(r Routes) Option {
	return func(c *Controller) { c.routes = r }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records flow metrics on m.
func WithMetrics(m *observability.FlowMetrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithPhaseListener calls fn after every phase change, e.g. to render
// "Signing in...".
func WithPhaseListener(fn func(Phase)) Option {
	return func(c *Controller) { c.onPhase = fn }
}

// Controller runs the sign-in, sign-up and sign-out flows for one form.
type Controller struct {
	form    *form.State
	auth    Authenticator
	nav     Navigator
	cfg     Config
	routes  Routes
	log     *logger.Logger
	metrics *observability.FlowMetrics
	onPhase func(Phase)

	mu     sync.Mutex
	phase  Phase
	active bool
}

// New creates a Controller. f may be nil for a view that only signs out.
func New(f *form.State, auth Authenticator, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		form: f,
		auth: auth,
		nav:  nav,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg.ApplyDefaults()
	c.routes.ApplyDefaults()
	c.log = c.log.WithComponent("flow")
	if f != nil {
		c.log = c.log.WithFields(logger.Fields(
			logger.FieldFormID, f.ID(),
			logger.FieldFlow, f.Kind().String(),
		))
	}
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Form returns the bound form, or nil.
func (c *Controller) Form() *form.State {
	return c.form
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
	c.notifyPhase(p)
}

// claim moves the controller into Validating unless one of its submissions
// is already running. Only the claimant changes the phase until release.
func (c *Controller) claim() bool {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return false
	}
	c.active = true
	c.phase = Validating
	c.mu.Unlock()
	c.notifyPhase(Validating)
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

func (c *Controller) notifyPhase(p Phase) {
	c.log.Debug("Flow phase changed", logger.Fields(logger.FieldPhase, p.String()))
	if c.onPhase != nil {
		c.onPhase(p)
	}
}

// Submit validates the form and, if valid, submits it to the identity
// service. It never issues a second request while one is in flight.
func (c *Controller) Submit(ctx context.Context) Outcome {
	if c.form == nil {
		return Outcome{Phase: Failed, Err: errors.Internal(nil).WithDetail("reason", "no form bound")}
	}
	kind := c.form.Kind()
	flowName := kind.String()

	if c.form.Submitting() {
		c.log.Debug("Submit ignored: already submitting")
		c.recordOutcome(ctx, flowName, observability.StatusBusy, 0)
		return Outcome{Phase: Idle, Busy: true}
	}

	if !c.claim() {
		c.log.Debug("Submit ignored: already submitting")
		c.recordOutcome(ctx, flowName, observability.StatusBusy, 0)
		return Outcome{Phase: Idle, Busy: true}
	}
	defer c.release()

	start := time.Now()
	draft := c.form.Snapshot().Draft
	if errs := validation.Validate(draft, kind); !errs.Valid() {
		c.form.SetFieldErrors(errs)
		c.log.Debug("Submit rejected by validation", logger.Fields("fields", errs.Fields()))
		c.recordOutcome(ctx, flowName, observability.StatusRejected, time.Since(start))
		c.setPhase(Idle)
		return Outcome{Phase: Idle, FieldErrors: errs}
	}
	c.form.SetFieldErrors(nil)

	if !c.form.BeginSubmit() {
		c.recordOutcome(ctx, flowName, observability.StatusBusy, 0)
		c.setPhase(Idle)
		return Outcome{Phase: Idle, Busy: true}
	}
	c.setPhase(Submitting)

	ctx = logger.ContextWithRequestID(ctx, c.form.ID())
	op, ctx := observability.StartOperation(ctx, observability.SpanFlowSubmit, flowName, c.form.ID(), c.metrics)

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.SubmitTimeout)
	s, err := c.call(attemptCtx, kind, draft)
	cancel()

	if err != nil {
		appErr := asAppError(attemptCtx, flowName, err)
		op.End(ctx, observability.StatusFailed, appErr)
		return c.fail(appErr)
	}

	op.SetUser(s.UserID)
	op.End(ctx, observability.StatusSuccess, nil)
	return c.succeed(kind, s)
}

func (c *Controller) call(ctx context.Context, kind validation.FormKind, d validation.Credentials) (session.Session, error) {
	if kind == validation.SignUp {
		return c.auth.SignUp(ctx, d.Name, d.Email, d.Password)
	}
	return c.auth.SignIn(ctx, d.Email, d.Password)
}

func (c *Controller) succeed(kind validation.FormKind, s session.Session) Outcome {
	c.setPhase(Success)

	route := c.routes.Home
	if kind == validation.SignUp {
		route = c.routes.SignIn
	}

	c.form.EndSubmit(nil)
	c.log.Info("Authentication succeeded", logger.Fields(
		logger.FieldUserID, s.UserID,
		logger.FieldPath, route,
	))
	if c.nav != nil {
		c.nav.NavigateTo(route)
	}
	c.setPhase(Idle)
	return Outcome{Phase: Success, Session: s, NavigatedTo: route}
}

func (c *Controller) fail(appErr *errors.AppError) Outcome {
	c.setPhase(Failed)

	c.form.EndSubmit(&form.SubmissionError{
		Message: appErr.DisplayMessage(),
		Field:   appErr.Field,
		Code:    string(appErr.Code),
	})
	if c.cfg.ClearPasswordsOnError {
		c.form.ClearPasswords()
	}
	c.log.Warn("Authentication failed", logger.Fields(
		logger.FieldErrorCode, string(appErr.Code),
		"kind", string(appErr.Kind),
		logger.FieldError, appErr.DisplayMessage(),
	))
	c.setPhase(Idle)
	return Outcome{Phase: Failed, Err: appErr}
}

// SignOut ends the session. The session cache is cleared whatever the
// identity service answers; its error is logged and returned but never
// written into a form.
func (c *Controller) SignOut(ctx context.Context) error {
	c.setPhase(Submitting)
	defer c.setPhase(Idle)

	op, ctx := observability.StartOperation(ctx, observability.SpanFlowSignOut, "sign-out", "", c.metrics)
	err := c.auth.SignOut(ctx)
	if err != nil {
		appErr := asAppError(ctx, "sign-out", err)
		op.End(ctx, observability.StatusFailed, appErr)
		c.log.Warn("Sign-out failed", logger.Fields(logger.FieldErrorCode, string(appErr.Code)))
		return appErr
	}
	op.End(ctx, observability.StatusSuccess, nil)
	c.log.Info("Signed out")
	return nil
}

func (c *Controller) recordOutcome(ctx context.Context, flowName, status string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordOutcome(ctx, flowName, status, d)
	}
}

// asAppError normalizes err. A context that ran out during the attempt is
// reported as a timeout.
func asAppError(ctx context.Context, op string, err error) *errors.AppError {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Timeout(op).WithCause(err)
	}
	return errors.Internal(err)
}
