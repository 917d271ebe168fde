package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/link"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/http/router"
)

// The suffix stripped from a concrete controller's type name
// to derive its display name.
const nameSuffix = "Controller"

// App is the slice of the application context a controller runs within.
//
// The app outlives every controller it creates;
// controllers hold it as a non-owning back-reference.
type App interface {
	Links() *link.Generator
	Responder() *resp.Responder
}

// An Action is one named operation a controller exposes,
// bound to the per-request controller instance that will run it.
type Action func() (resp.Response, error)

// A Controller handles the requests the router maps to it.
//
// One instance is constructed per request; no instance state is
// shared across requests.
type Controller interface {
	// Index is the mandatory default action.
	Index() (resp.Response, error)

	// Actions registers every named action beyond Index.
	// The dispatcher consults the registry by the resolved action name,
	// so unknown actions fail fast as a missing route,
	// never via reflection at call time.
	Actions() map[string]Action

	// Authorize gates the named action before it runs.
	// Returning false short-circuits dispatch with an authorization failure.
	Authorize(action string) bool

	// Mount injects the application context and the per-request state.
	// The dispatcher calls Mount exactly once, before any action runs.
	Mount(app App, rt router.Route, r *http.Request) error
}

// Name derives a controller's display name by stripping the
// conventional "Controller" suffix from its concrete type's simple name.
func Name(c Controller) string {
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return strings.TrimSuffix(t.Name(), nameSuffix)
}

// Base carries the per-request state every controller needs and
// provides the helper constructors for each Response kind.
//
// Embed Base in a concrete controller and implement Index
// plus any named Actions.
type Base struct {
	app     App
	route   router.Route
	req     *http.Request
	mounted bool
}

// Mount implements Controller.
// Mounting an already-mounted controller is a programming error.
func (b *Base) Mount(app App, rt router.Route, r *http.Request) error {
	if b.mounted {
		return fmt.Errorf("%w: controller mounted twice", portage.ErrBadConfig)
	}

	if app == nil {
		return fmt.Errorf("%w: no app to mount", portage.ErrBadConfig)
	}

	b.app = app
	b.route = rt
	b.req = r
	b.mounted = true
	return nil
}

// Actions implements Controller with an empty registry;
// concrete controllers override it to expose named actions.
func (b *Base) Actions() map[string]Action { return nil }

// Authorize implements Controller, allowing every action by default.
func (b *Base) Authorize(action string) bool { return true }

// App returns the application context injected by Mount.
func (b *Base) App() App { return b.app }

// Request returns the *http.Request being handled.
func (b *Base) Request() *http.Request { return b.req }

// Route returns the route resolved for the request being handled.
func (b *Base) Route() router.Route { return b.route }

// HTML builds a *resp.View for data.
//
// The view name is inferred in one of three ways:
//
//	HTML(data)                  -> <currentController>/<currentAction>
//	HTML(data, "list")          -> <currentController>/list
//	HTML(data, "Other", "list") -> Other/list
//
// The last form enables reusing another controller's views.
func (b *Base) HTML(data map[string]any, view ...string) *resp.View {
	var name string
	switch len(view) {
	case 0:
		name = b.route.Controller + "/" + b.route.Action
	case 1:
		name = b.route.Controller + "/" + view[0]
	default:
		name = view[0] + "/" + view[1]
	}

	return resp.NewView(b.app.Responder(), name, data)
}

// JSON builds a *resp.JSON carrying data.
func (b *Base) JSON(data any) *resp.JSON { return resp.NewJSON(data) }

// Redirect builds a *resp.Redirect targeting url.
func (b *Base) Redirect(url string) *resp.Redirect { return resp.NewRedirect(url) }

// URL delegates to the app's link.Generator.
// It fails wrapping portage.ErrInvalidDestination when destination
// does not resolve to a known controller-action pair.
func (b *Base) URL(destination string, params url.Values, absolute, appendParams bool) (string, error) {
	return b.app.Links().URL(destination, params, absolute, appendParams)
}
