package commands

import (
	"github.com/kbukum/authfront/authclient"
	"github.com/kbukum/authfront/config"
	"github.com/kbukum/authfront/flow"
	"github.com/kbukum/authfront/form"
	"github.com/kbukum/authfront/identity"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/observability"
	"github.com/kbukum/authfront/session"
)

// app holds the process-wide collaborators shared by every page.
type app struct {
	cfg     *config.AppConfig
	log     *logger.Logger
	store   *session.Store
	client  *authclient.Client
	metrics *observability.FlowMetrics
}

func newApp(cfg *config.AppConfig, log *logger.Logger) (*app, error) {
	svc, err := identity.NewHTTPService(cfg.Identity, log)
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewFlowMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return nil, err
	}
	store := session.NewStore()
	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		client:  authclient.New(svc, store, log),
		metrics: metrics,
	}, nil
}

// controller binds a flow controller to f; f may be nil for sign-out.
func (a *app) controller(f *form.State, nav flow.Navigator) *flow.Controller {
	return flow.New(f, a.client, nav,
		flow.WithConfig(a.cfg.Flow),
		flow.WithRoutes(a.cfg.Routes),
		flow.WithLogger(a.log),
		flow.WithMetrics(a.metrics),
	)
}
