package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/kbukum/authfront/errors"
	"github.com/kbukum/authfront/flow"
	"github.com/kbukum/authfront/form"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/session"
	"github.com/kbukum/authfront/validation"
)

const shellHelp = `Commands:
  sign-up    open the sign-up page and submit it
  sign-in    open the sign-in page and submit it
  sign-out   end the current session
  whoami     show the cached session
  refresh    ask the identity service for the current session
  home       go to the home page
  help       show this help
  quit       leave the shell`

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive sign-up / sign-in pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg, logger.GetGlobalLogger())
			if err != nil {
				return err
			}
			return newShell(a, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}

// shell is a line-oriented rendering of the sign-in, sign-up and home pages.
type shell struct {
	app *app
	p   *prompter
	out io.Writer

	mu    sync.Mutex
	route string
	pages map[string]*flow.Controller
}

func newShell(a *app, in io.Reader, out io.Writer) *shell {
	return &shell{
		app:   a,
		p:     newPrompter(in, out),
		out:   out,
		route: a.cfg.Routes.SignIn,
		pages: make(map[string]*flow.Controller),
	}
}

// NavigateTo switches the current page. Leaving a page discards its form.
func (s *shell) NavigateTo(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path != s.route {
		delete(s.pages, s.route)
	}
	s.route = path
}

func (s *shell) currentRoute() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// page returns the controller for route, creating a fresh form on first visit.
func (s *shell) page(route string, kind validation.FormKind) *flow.Controller {
	s.NavigateTo(route)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.pages[route]
	if !ok {
		c = s.app.controller(form.New(kind), s)
		s.pages[route] = c
	}
	return c
}

func (s *shell) run(ctx context.Context) error {
	// the home page is protected: losing the session sends the user to sign-in
	cancel := s.app.client.Subscribe(func(_ session.Session, ok bool) {
		if !ok && s.currentRoute() == s.app.cfg.Routes.Home {
			s.NavigateTo(s.app.cfg.Routes.SignIn)
		}
	})
	defer cancel()

	fmt.Fprintln(s.out, "authfront shell. Type 'help' for commands.")
	for {
		line, err := s.p.ask("authfront " + s.currentRoute())
		if stderrors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		quit, err := s.dispatch(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *shell) dispatch(ctx context.Context, line string) (quit bool, err error) {
	routes := s.app.cfg.Routes
	switch strings.ToLower(line) {
	case "":
	case "sign-up", "signup":
		return false, s.submit(ctx, routes.SignUp, validation.SignUp)
	case "sign-in", "signin":
		return false, s.submit(ctx, routes.SignIn, validation.SignIn)
	case "sign-out", "signout":
		s.signOut(ctx)
	case "whoami":
		s.renderSession()
	case "refresh":
		s.refresh(ctx)
	case "home":
		s.NavigateTo(routes.Home)
		s.renderSession()
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "quit", "exit":
		return true, nil
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for commands.\n", line)
	}
	return false, nil
}

func (s *shell) submit(ctx context.Context, route string, kind validation.FormKind) error {
	c := s.page(route, kind)
	if err := s.p.fill(c.Form()); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	out := c.Submit(ctx)
	report(s.out, kind, out, c.Form().Snapshot())
	return nil
}

func (s *shell) signOut(ctx context.Context) {
	err := s.app.controller(nil, s).SignOut(ctx)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			fmt.Fprintf(s.out, "Signed out locally; the identity service reported: %s\n", appErr.DisplayMessage())
		} else {
			fmt.Fprintf(s.out, "Signed out locally; the identity service reported: %v\n", err)
		}
	} else {
		fmt.Fprintln(s.out, "Signed out.")
	}
	s.NavigateTo(s.app.cfg.Routes.SignIn)
}

func (s *shell) refresh(ctx context.Context) {
	if _, _, err := s.app.client.Refresh(ctx); err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			fmt.Fprintf(s.out, "Error: %s\n", appErr.DisplayMessage())
			return
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.renderSession()
}

// renderSession prints the authenticated or unauthenticated view.
func (s *shell) renderSession() {
	sess, ok := s.app.client.CurrentSession()
	if !ok {
		fmt.Fprintln(s.out, "You are not signed in.")
		return
	}
	fmt.Fprintf(s.out, "Welcome back, %s! (%s)\n", sess.Name, sess.Email)
}
