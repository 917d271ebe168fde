package portage

// A Key identifies a value a portage app stashes in a context.Context
// over the course of handling a request.
type Key string

const (
	// CurrentUserKey stashes the user loaded for an authenticated session.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey stashes the IP address of the HTTP request being handled.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// RouteKey stashes the route resolved for the HTTP request being handled.
	RouteKey Key = "RouteKey"

	// SessionKey stashes the session associated with the HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information.
func (k Key) String() string {
	return "portage context key: " + string(k)
}
