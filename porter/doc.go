/*
Package porter initializes and manages a portage app with sane defaults.

# Porter

The main entrypoint to package porter is the Porter type,
constructed with New from a set of Options.
Register adds the app's controllers; Handle maps explicit routes onto them.
(*Porter).Guide begins the web server, funneling every request through
the front controller: resolve a route, construct the matching controller,
mount it, authorize the action, run it, generate its Response.

Stop the web server with (*Porter).Shutdown or a signal Guide listens for.

# Configuration

A developer configures a portage app through environment variables
and by passing Options to New.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application; seeds the session cookie name
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the SSL mode for the database connection; default: prefer
  - DATABASE_URL: the fully-qualified connection string; replaces all other DATABASE_* env vars
  - DATABASE_TEST_*: the same set, used when ENVIRONMENT is TESTING
  - ENVIRONMENT: the environment the application is running in; cf. portage.Environment
  - LOG_LEVEL: the level at which to begin logging; default: INFO
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: when set, errors ship to Sentry; cf. logger
  - SERVER_IDLE_TIMEOUT: the keep-alive idle timeout, as understood by time.ParseDuration; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. encoding/hex
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies
  - SHOW_ERROR_DETAILS: whether error responses carry the error chain; default: true outside PRODUCTION
*/
package porter
