package resp

import (
	"bytes"
	"fmt"
	html "html/template"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/link"
	"github.com/portageworks/portage/http/template"
	"github.com/portageworks/portage/logger"
)

const (
	viewExt   = ".view.tmpl"
	layoutExt = ".layout" + viewExt

	// Fixed keys the view helper bundle is merged under.
	authHelperKey = "auth"
	linkHelperKey = "link"

	// Key the layout receives the captured view output under.
	contentKey = "content"
)

// An AuthState describes the authentication state of the current request,
// as exposed to views under the "auth" key.
type AuthState struct {
	LoggedIn bool
	User     any
}

// An AuthStater reports the AuthState for a request.
type AuthStater interface {
	AuthState(r *http.Request) AuthState
}

// Responder maintains the reusable pieces for generating Responses:
// the template parser, the root layout, the error view, and the helper
// bundle views are rendered with.
//
// Setting up a single instance of a Responder suffices for an application;
// every View generated through it shares its configuration.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Builds URLs for the "link" view helper
	links *link.Generator

	// Supplies the "auth" view helper
	auth AuthStater

	// Root layout view name; "" renders views bare
	layout string

	// View rendered when translating an error for a browser client
	errView string

	// Whether error payloads carry the exception chain
	showDetails bool

	// Root URL the responder is listening on
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool:    &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		errView: "error",
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if d.parser != nil {
		d.parser.AddFn(template.Nonce())
		if d.rootUrl != nil {
			d.parser.AddFn(template.RootUrl(d.rootUrl))
		}
	}

	return d
}

// Links exposes the link.Generator backing the "link" view helper.
func (d *Responder) Links() *link.Generator { return d.links }

// Fail wraps http.Error(), logging the error causing the failure state.
//
// Use in exceptional circumstances when no other Response can be generated.
func (d *Responder) Fail(w http.ResponseWriter, r *http.Request, err error) {
	var msg string
	if err != nil {
		msg = err.Error()
		d.logger.Error(msg, &logger.LogContext{Error: err, Request: r})
	}

	code := portage.HTTPStatus(err)
	if code < http.StatusBadRequest {
		code = http.StatusInternalServerError
	}

	http.Error(w, msg, code)
}

// render composes the View's template with the configured layout
// and writes the result to w.
//
// The capture buffer is released exactly once on every exit path;
// nothing is written to w until composition succeeds.
func (d *Responder) render(w http.ResponseWriter, r *http.Request, v *View) error {
	if d.parser == nil {
		return fmt.Errorf("%w: no parser configured", portage.ErrBadConfig)
	}

	if v.name == "" {
		return fmt.Errorf("%w: no view to render", portage.ErrMissingData)
	}

	data := make(map[string]any, len(v.data)+2)
	for k, val := range v.data {
		data[k] = val
	}
	for k, val := range d.helpers(r) {
		data[k] = val
	}

	b := d.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer d.pool.Put(b)

	if err := d.execute(b, viewFile(v.name), data); err != nil {
		return err
	}

	out := b
	if d.layout != "" {
		ld := d.helpers(r)
		ld[contentKey] = html.HTML(b.String())

		lb := d.pool.Get().(*bytes.Buffer)
		lb.Reset()
		defer d.pool.Put(lb)

		if err := d.execute(lb, layoutFile(d.layout), ld); err != nil {
			return err
		}

		out = lb
	}

	code := v.code
	if code == 0 {
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := out.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// execute parses the named template file and runs it into b.
func (d *Responder) execute(b *bytes.Buffer, file string, data map[string]any) error {
	tmpl, err := d.parser.Parse(file)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q: %s", ErrRender, file, err)
	}

	if err := tmpl.ExecuteTemplate(b, path.Base(file), data); err != nil {
		return fmt.Errorf("%w: %q: %s", ErrRender, file, err)
	}

	return nil
}

// helpers builds the bundle merged into every view's data:
// the auth-state accessor and the link-generation function.
func (d *Responder) helpers(r *http.Request) map[string]any {
	var auth AuthState
	if d.auth != nil {
		auth = d.auth.AuthState(r)
	}

	return map[string]any{
		authHelperKey: auth,
		linkHelperKey: d.linkFn(),
	}
}

// linkFn closes over the Responder's link.Generator for use inside
// templates, e.g. {{call .link "Blog/show" "id" "5"}}.
// Pairs become path parameters.
func (d *Responder) linkFn() func(dest string, pairs ...string) (string, error) {
	return func(dest string, pairs ...string) (string, error) {
		if d.links == nil {
			return "", fmt.Errorf("%w: no link generator configured", portage.ErrBadConfig)
		}

		if len(pairs)%2 != 0 {
			return "", fmt.Errorf("%w: link params must be name-value pairs", portage.ErrNotValid)
		}

		params := make(url.Values, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			params.Add(pairs[i], pairs[i+1])
		}

		return d.links.URL(dest, params, false, false)
	}
}

// viewFile locates a view by convention, <name>.view.tmpl.
func viewFile(name string) string { return name + viewExt }

// layoutFile locates a layout by convention, <name>.layout.view.tmpl,
// appending the suffix only when not already present.
func layoutFile(name string) string {
	if strings.HasSuffix(name, layoutExt) {
		return name
	}

	return name + layoutExt
}
