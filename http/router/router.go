package router

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/portageworks/portage"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAction is the action a Route falls back to
// when the request path names a controller but no action.
const DefaultAction = "index"

var paramNameRegex = regexp.MustCompile(`\{([^}:]+)(?::[^}]+)?\}`)

// A Param is one name-value pair a Route carries.
type Param struct {
	Name  string
	Value string
}

// A Route is the resolved mapping from an incoming path
// to a controller, an action, and an ordered set of parameters.
//
// A Route is produced per request and immutable once resolved.
type Route struct {
	Controller string
	Action     string
	Params     []Param
}

// Param returns the value for the named parameter, or "" when absent.
func (rt Route) Param(name string) string {
	for _, p := range rt.Params {
		if p.Name == name {
			return p.Value
		}
	}

	return ""
}

// View returns the conventional view identifier for the Route,
// <controller>/<action>.
func (rt Route) View() string { return rt.Controller + "/" + rt.Action }

// A Validator reports whether a controller-action pair is known to the app.
type Validator func(controller, action string) bool

// Router maps request paths to Routes.
//
// Explicitly registered routes take precedence;
// anything else falls through to the /{controller}/{action}/{params...} convention.
type Router struct {
	m      *mux.Router
	titler cases.Caser
	valid  Validator

	defaultController string
	defaultAction     string
}

// New constructs a *Router falling back to the provided
// default controller and action when the request path is empty.
func New(defaultController, defaultAction string) *Router {
	if defaultAction == "" {
		defaultAction = DefaultAction
	}

	return &Router{
		m:                 mux.NewRouter(),
		titler:            cases.Title(language.English, cases.NoLower),
		defaultController: defaultController,
		defaultAction:     defaultAction,
	}
}

// Handle registers an explicit mapping from the method and path template
// to the controller-action pair.
//
// Path templates use gorilla/mux syntax; each {name} segment becomes
// a named Route parameter, ordered as declared in the template.
func (ro *Router) Handle(method, tmpl, controller, action string) error {
	if controller == "" || action == "" {
		return fmt.Errorf("%w: route %q needs a controller and an action", portage.ErrBadConfig, tmpl)
	}

	names := make([]string, 0)
	for _, m := range paramNameRegex.FindAllStringSubmatch(tmpl, -1) {
		names = append(names, m[1])
	}

	rt := ro.m.Path(tmpl).Methods(method)
	if err := rt.GetError(); err != nil {
		return fmt.Errorf("%w: %s", portage.ErrBadConfig, err)
	}

	rt.Handler(registration{controller: controller, action: action, paramNames: names})
	return nil
}

// SetValidator installs the Validator convention-resolved Routes are
// checked against. Without one, any well-formed path resolves.
func (ro *Router) SetValidator(v Validator) { ro.valid = v }

// Resolve maps the request's path and method to a Route.
//
// Unmapped and malformed paths fail wrapping portage.ErrRouteNotFound.
func (ro *Router) Resolve(r *http.Request) (Route, error) {
	var match mux.RouteMatch
	if ro.m.Match(r, &match) && match.MatchErr == nil {
		reg, ok := match.Handler.(registration)
		if !ok {
			return Route{}, fmt.Errorf("%w: %s", portage.ErrRouteNotFound, r.URL.Path)
		}

		rt := Route{Controller: reg.controller, Action: reg.action}
		for _, name := range reg.paramNames {
			rt.Params = append(rt.Params, Param{Name: name, Value: match.Vars[name]})
		}

		return rt, nil
	}

	return ro.conventional(r.URL.Path)
}

// conventional decomposes path as /{controller}/{action}/{params...},
// falling back to the default controller and action for an empty path.
func (ro *Router) conventional(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Route{Controller: ro.defaultController, Action: ro.defaultAction}, nil
	}

	segs := strings.Split(trimmed, "/")
	for _, s := range segs {
		if s == "" {
			return Route{}, fmt.Errorf("%w: malformed path %q", portage.ErrRouteNotFound, path)
		}
	}

	rt := Route{
		Controller: ro.titler.String(segs[0]),
		Action:     ro.defaultAction,
	}

	if len(segs) > 1 {
		rt.Action = segs[1]
	}

	// NOTE(jay): remaining segments are positional, named by ordinal
	for i, val := range segs[2:] {
		rt.Params = append(rt.Params, Param{Name: strconv.Itoa(i), Value: val})
	}

	if ro.valid != nil && !ro.valid(rt.Controller, rt.Action) {
		return Route{}, fmt.Errorf("%w: %s", portage.ErrRouteNotFound, path)
	}

	return rt, nil
}

// registration stores a resolved target on a mux route.
// It is never served directly; Resolve unpacks it.
type registration struct {
	controller string
	action     string
	paramNames []string
}

func (registration) ServeHTTP(http.ResponseWriter, *http.Request) {}
