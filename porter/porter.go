package porter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TODO(jay): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/controller"
	"github.com/portageworks/portage/http/link"
	"github.com/portageworks/portage/http/middleware"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/http/router"
	"github.com/portageworks/portage/http/session"
	"github.com/portageworks/portage/logger"
	"github.com/portageworks/portage/postgres"
)

// A Constructor builds the fresh controller instance serving one request.
//
// Constructors run once per dispatch, so controllers never share
// per-request state.
type Constructor func() controller.Controller

// A Porter manages and exposes all components of a portage app to one another.
//
// Porter implements controller.App; every mounted controller reaches
// shared collaborators through it.
type Porter struct {
	controllers map[string]Constructor

	ctx       context.Context
	db        *postgres.DB
	env       portage.Environment
	links     *link.Generator
	l         logger.Logger
	mws       []middleware.Adapter
	responder *resp.Responder
	router    *router.Router
	sessions  session.SessionStorer
	srv       *http.Server
	url       *url.URL
}

// New constructs a *Porter from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...Option) (*Porter, error) {
	p := &Porter{controllers: make(map[string]Constructor)}
	followups := make([]OptFollowup, 0)

	// NOTE(jay): calling an option configures the *Porter under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Porter
	// until either (1) user supplied Options or (2) default Options
	// configure the *Porter first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", portage.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", portage.ErrBadConfig, err)
		}
	}

	p.router.SetValidator(p.knownRoute)
	return p, nil
}

// Register adds the controllers the app dispatches to,
// keyed by the name controller.Name derives for each.
//
// Register fails when a Constructor produces nil
// or a name collides with one already registered.
func (p *Porter) Register(ctors ...Constructor) error {
	for _, ctor := range ctors {
		if ctor == nil {
			return fmt.Errorf("%w: nil controller constructor", portage.ErrBadConfig)
		}

		probe := ctor()
		if probe == nil {
			return fmt.Errorf("%w: controller constructor returned nil", portage.ErrBadConfig)
		}

		name := controller.Name(probe)
		if name == "" {
			return fmt.Errorf("%w: cannot derive a name for %T", portage.ErrBadConfig, probe)
		}

		if _, ok := p.controllers[name]; ok {
			return fmt.Errorf("%w: controller %q registered twice", portage.ErrBadConfig, name)
		}

		p.controllers[name] = ctor
	}

	return nil
}

// Handle registers an explicit route resolving to the controller-action pair,
// taking precedence over the conventional /{controller}/{action} mapping.
func (p *Porter) Handle(method, tmpl, controllerName, action string) error {
	return p.router.Handle(method, tmpl, controllerName, action)
}

// knownRoute reports whether a controller-action pair resolves to a
// registered controller. It backs both the router's Validator and the
// link.Generator so convention routes and generated links agree.
func (p *Porter) knownRoute(name, action string) bool {
	ctor, ok := p.controllers[name]
	if !ok {
		return false
	}

	if action == router.DefaultAction {
		return true
	}

	_, ok = ctor().Actions()[action]
	return ok
}

// DB exposes the shared database handle.
func (p *Porter) DB() *postgres.DB { return p.db }

// Env exposes the environment the app is operating within.
func (p *Porter) Env() portage.Environment { return p.env }

// Links implements controller.App.
func (p *Porter) Links() *link.Generator { return p.links }

// Logger exposes the shared logger.Logger.
func (p *Porter) Logger() logger.Logger { return p.l }

// Responder implements controller.App.
func (p *Porter) Responder() *resp.Responder { return p.responder }

// SessionStore exposes the shared session.SessionStorer.
func (p *Porter) SessionStore() session.SessionStorer { return p.sessions }

// Guide begins the web server.
//
// These, and (*Porter).Shutdown, stop Guide:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (p *Porter) Guide() error {
	var cancel context.CancelFunc
	p.ctx, cancel = context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		s := <-ch
		p.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
		cancel()
	}()

	go func() {
		p.l.Info(fmt.Sprintf("running web server at %s", p.srv.Addr), nil)
		p.srv.Handler = middleware.Chain(p, p.mws...)
		if err := p.srv.ListenAndServe(); err != http.ErrServerClosed {
			p.l.Error(fmt.Errorf("could not listen: %w", err).Error(), nil)
		}
	}()

	<-p.ctx.Done()
	return p.Shutdown()
}

// Shutdown shutdowns the web server.
func (p *Porter) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p.l.Info("shutting down web server", nil)
	err := p.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		p.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	p.l.Info("web server shutdown successfully", nil)
	return nil
}
