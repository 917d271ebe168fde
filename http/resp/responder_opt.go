package resp

import (
	"net/url"

	"github.com/portageworks/portage/http/link"
	"github.com/portageworks/portage/http/template"
	"github.com/portageworks/portage/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithAuth sets the AuthStater backing the "auth" view helper.
func WithAuth(a AuthStater) func(*Responder) {
	return func(d *Responder) {
		d.auth = a
	}
}

// WithErrView sets the view rendered when translating an error
// for a browser client.
//
// Without this option, the view named "error" is used.
func WithErrView(name string) func(*Responder) {
	return func(d *Responder) {
		d.errView = name
	}
}

// WithLayout sets the root layout views are composed into.
//
// Without this option, views render bare.
func WithLayout(name string) func(*Responder) {
	return func(d *Responder) {
		d.layout = name
	}
}

// WithLinks sets the link.Generator backing the "link" view helper.
func WithLinks(g *link.Generator) func(*Responder) {
	return func(d *Responder) {
		d.links = g
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, a default logger will be configured.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) func(*Responder) {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) func(*Responder) {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}

// WithShowDetails toggles whether error payloads carry the error chain.
//
// Leave off outside development environments.
func WithShowDetails(show bool) func(*Responder) {
	return func(d *Responder) {
		d.showDetails = show
	}
}
