package porter

import (
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/link"
	"github.com/portageworks/portage/http/middleware"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/http/router"
	"github.com/portageworks/portage/http/session"
	"github.com/portageworks/portage/http/template"
	"github.com/portageworks/portage/logger"
	"github.com/portageworks/portage/postgres"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Base URL defaults
	BaseURLEnvVar  = "BASE_URL"
	defaultBaseURL = "http://" + DefaultHost + DefaultPort

	// App metadata
	AppTitleEnvVar = "APP_TITLE"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Database defaults
	dbHostEnvVar     = "DATABASE_HOST"
	defaultDBHost    = "localhost"
	dbNameEnvVar     = "DATABASE_NAME"
	dbPassEnvVar     = "DATABASE_PASSWORD"
	dbPortEnvVar     = "DATABASE_PORT"
	defaultDBPort    = "5432"
	dbSSLModeEnvVar  = "DATABASE_SSLMODE"
	defaultDBSSLMode = "prefer"
	dbURLEnvVar      = "DATABASE_URL"
	dbUserEnvVar     = "DATABASE_USER"

	// Default controller conventions
	DefaultController = "Home"
	defaultTmplDir    = "tmpl"
	defaultLayout     = "application"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"

	// Test database defaults
	dbTestHostEnvVar  = "DATABASE_TEST_HOST"
	dbTestNameEnvVar  = "DATABASE_TEST_NAME"
	dbTestPassEnvVar  = "DATABASE_TEST_PASSWORD"
	dbTestPortEnvVar  = "DATABASE_TEST_PORT"
	dbTestURLEnvVar   = "DATABASE_TEST_URL"
	dbTestUserEnvVar  = "DATABASE_TEST_USER"
	showDetailsEnvVar = "SHOW_ERROR_DETAILS"
)

// defaultOpts builds the baseline configuration applied before any
// user-supplied Option.
func defaultOpts() []Option {
	return []Option{
		WithEnv(os.Getenv(environmentEnvVar)),
		defaultLoggerOpt(),
		WithBaseURL(portage.EnvVarOrString(BaseURLEnvVar, defaultBaseURL)),
		defaultSessionOpt(),
		defaultWebOpt(),
	}
}

// defaultLoggerOpt configures the app logger from LOG_LEVEL and ENVIRONMENT.
func defaultLoggerOpt() Option {
	return func(p *Porter) (OptFollowup, error) {
		p.l = logger.New(
			logger.WithEnv(p.env.String()),
			logger.WithLevel(logger.NewLogLevel(os.Getenv(logLevelEnvVar))),
		)

		return nil, nil
	}
}

// defaultSessionOpt backs sessions with cookies keyed by
// SESSION_AUTH_KEY and SESSION_ENCRYPTION_KEY.
// Without those keys, the app runs sessionless.
func defaultSessionOpt() Option {
	return func(p *Porter) (OptFollowup, error) {
		if os.Getenv(SessionAuthKeyEnvVar) == "" {
			return nil, nil
		}

		name := cases.Lower(language.English).String(portage.EnvVarOrString(AppTitleEnvVar, "portage"))
		name = regexp.MustCompile(`\s`).ReplaceAllString(name, "-")

		store, err := session.NewStoreService(session.Config{
			AuthKey:     os.Getenv(SessionAuthKeyEnvVar),
			EncryptKey:  os.Getenv(SessionEncryptKeyEnvVar),
			Env:         p.env,
			SessionName: "portage-" + name,
		})
		if err != nil {
			return nil, err
		}

		p.sessions = store
		return nil, nil
	}
}

// defaultWebOpt wires the router, link generator, responder, middleware
// chain, and web server once the options they depend on have run.
func defaultWebOpt() Option {
	return func(p *Porter) (OptFollowup, error) {
		return func() error {
			if p.router == nil {
				p.router = router.New(DefaultController, router.DefaultAction)
			}

			p.links = link.NewGenerator(p.url, p.knownRoute)

			if p.responder == nil {
				parser := template.NewParser(template.WithFS(os.DirFS(defaultTmplDir)))
				p.responder = resp.NewResponder(
					resp.WithAuth(sessionAuth{}),
					resp.WithLayout(defaultLayout),
					resp.WithLinks(p.links),
					resp.WithLogger(p.l),
					resp.WithParser(parser),
					resp.WithRootUrl(p.url.String()),
					resp.WithShowDetails(portage.EnvVarOrBool(showDetailsEnvVar, !p.env.IsProduction())),
				)
			}

			if p.mws == nil {
				p.mws = []middleware.Adapter{
					middleware.RequestID(),
					middleware.InjectIPAddress(),
					middleware.LogRequest(p.l),
					middleware.InjectSession(p.sessions),
					middleware.Compress(),
				}
			}

			if p.srv == nil {
				p.srv = defaultServer()
			}

			return nil
		}, nil
	}
}

// defaultServer constructs a default *http.Server.
func defaultServer() *http.Server {
	port := portage.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return &http.Server{
		Addr:         port,
		IdleTimeout:  portage.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  portage.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: portage.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}

// NewPostgresConfig constructs a *postgres.CxnConfig appropriate to the
// given environment. Confer the DATABASE env vars for usage.
func NewPostgresConfig(env portage.Environment) *postgres.CxnConfig {
	if env.IsTesting() {
		if url := os.Getenv(dbTestURLEnvVar); url != "" {
			return &postgres.CxnConfig{IsTestDB: true, URL: url}
		}

		return &postgres.CxnConfig{
			Host:     portage.EnvVarOrString(dbTestHostEnvVar, defaultDBHost),
			IsTestDB: true,
			Name:     os.Getenv(dbTestNameEnvVar),
			Password: os.Getenv(dbTestPassEnvVar),
			Port:     portage.EnvVarOrString(dbTestPortEnvVar, defaultDBPort),
			User:     os.Getenv(dbTestUserEnvVar),
		}
	}

	if url := os.Getenv(dbURLEnvVar); url != "" {
		return &postgres.CxnConfig{URL: url}
	}

	return &postgres.CxnConfig{
		Host:     portage.EnvVarOrString(dbHostEnvVar, defaultDBHost),
		Name:     os.Getenv(dbNameEnvVar),
		Password: os.Getenv(dbPassEnvVar),
		Port:     portage.EnvVarOrString(dbPortEnvVar, defaultDBPort),
		SSLMode:  portage.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
		User:     os.Getenv(dbUserEnvVar),
	}
}

// DefaultDB connects to Postgres using the DATABASE env vars
// and runs the provided migrations.
func DefaultDB(env portage.Environment, migrations []postgres.Migration) (*postgres.DB, error) {
	db, err := postgres.Connect(NewPostgresConfig(env), migrations, env)
	if err != nil {
		return nil, err
	}

	return postgres.NewDB(db), nil
}

// sessionAuth reports the request's authentication state from what the
// middleware chain stored on the context.
type sessionAuth struct{}

func (sessionAuth) AuthState(r *http.Request) resp.AuthState {
	if user := r.Context().Value(portage.CurrentUserKey); user != nil {
		return resp.AuthState{LoggedIn: true, User: user}
	}

	s, ok := r.Context().Value(portage.SessionKey).(session.Session)
	if !ok {
		return resp.AuthState{}
	}

	if _, err := s.UserID(); err != nil {
		return resp.AuthState{}
	}

	return resp.AuthState{LoggedIn: true}
}
