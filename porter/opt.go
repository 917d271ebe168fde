package porter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/middleware"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/http/router"
	"github.com/portageworks/portage/http/session"
	"github.com/portageworks/portage/logger"
	"github.com/portageworks/portage/postgres"
)

// An Option configures a *Porter either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some Options require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithDB is an example of the first.
// An unexported field on the passed in *Porter is updated with the enclosed value.
//
// WithResponder is an example of the second.
// An unexported field on the passed in *Porter
// is updated only when the closure it returns is called.
type Option func(p *Porter) (OptFollowup, error)

type OptFollowup func() error

// WithBaseURL sets the base URL the app builds absolute links against.
func WithBaseURL(raw string) Option {
	return func(p *Porter) (OptFollowup, error) {
		u, err := url.ParseRequestURI(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot parse base URL %q: %s", raw, err)
		}

		p.url = u
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the app.
func WithContext(ctx context.Context) Option {
	return func(p *Porter) (OptFollowup, error) {
		p.ctx = ctx
		return nil, nil
	}
}

// WithDB exposes the provided *postgres.DB to the app.
//
// WithDB assumes a connection has already been established.
func WithDB(db *postgres.DB) Option {
	return func(p *Porter) (OptFollowup, error) {
		p.db = db
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, failing that, reads one from the ENVIRONMENT environment variable.
//
// If both fail, the Environment defaults to Development.
func WithEnv(envVar string) Option {
	return func(p *Porter) (OptFollowup, error) {
		e := portage.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = portage.EnvVarOrEnv(environmentEnvVar, portage.Development)
		}

		p.env = e
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) Option {
	return func(p *Porter) (OptFollowup, error) {
		p.l = l
		return nil, nil
	}
}

// WithMiddlewares replaces the default middleware chain wrapping dispatch.
func WithMiddlewares(mws ...middleware.Adapter) Option {
	return func(p *Porter) (OptFollowup, error) {
		p.mws = mws
		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the app.
func WithResponder(d *resp.Responder) Option {
	return func(p *Porter) (OptFollowup, error) {
		return func() error {
			if d == nil {
				return fmt.Errorf("nil responder")
			}

			p.responder = d
			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the app.
func WithRouter(r *router.Router) Option {
	return func(p *Porter) (OptFollowup, error) {
		return func() error {
			if r == nil {
				return fmt.Errorf("nil router")
			}

			p.router = r
			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the app.
func WithServer(s *http.Server) Option {
	return func(p *Porter) (OptFollowup, error) {
		p.srv = s
		return nil, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the app.
func WithSessionStore(store session.SessionStorer) Option {
	return func(p *Porter) (OptFollowup, error) {
		p.sessions = store
		return nil, nil
	}
}
