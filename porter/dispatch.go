package porter

import (
	"fmt"
	"net/http"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/controller"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/http/router"
)

// ServeHTTP implements http.Handler so a *Porter can serve requests
// directly, e.g. under httptest, without the middleware chain.
func (p *Porter) ServeHTTP(w http.ResponseWriter, r *http.Request) { p.dispatch(w, r) }

// dispatch is the front controller: every request funnels through it
// after the middleware chain.
//
// It resolves the request to a Route, constructs the matching controller,
// mounts it, gates the action through Authorize, runs the action,
// and generates the resulting Response.
// Every failure along the way degrades through respondErr.
func (p *Porter) dispatch(w http.ResponseWriter, r *http.Request) {
	rt, err := p.router.Resolve(r)
	if err != nil {
		p.respondErr(w, r, err)
		return
	}

	ctor, ok := p.controllers[rt.Controller]
	if !ok {
		p.respondErr(w, r, fmt.Errorf("%w: no controller %q", portage.ErrRouteNotFound, rt.Controller))
		return
	}

	c := ctor()
	if err := c.Mount(p, rt, r); err != nil {
		p.respondErr(w, r, err)
		return
	}

	// NOTE(jay): authorization runs before the action body,
	// so a denied action never executes any of its effects.
	if !c.Authorize(rt.Action) {
		p.respondErr(w, r, fmt.Errorf("%w: %s/%s", portage.ErrUnauthorized, rt.Controller, rt.Action))
		return
	}

	action, ok := c.Actions()[rt.Action]
	if !ok {
		if rt.Action != router.DefaultAction {
			p.respondErr(w, r, fmt.Errorf("%w: %s has no action %q", portage.ErrRouteNotFound, rt.Controller, rt.Action))
			return
		}

		action = c.Index
	}

	res, err := p.run(rt, action)
	if err != nil {
		p.respondErr(w, r, err)
		return
	}

	if res == nil {
		p.respondErr(w, r, fmt.Errorf("%w: %s produced no response", portage.ErrUnexpected, rt.View()))
		return
	}

	if err := res.Generate(w, r); err != nil {
		// NOTE(jay): views prerender, so a failed Generate has written
		// nothing to the client and the error path can still respond.
		p.respondErr(w, r, err)
	}
}

// run executes the action, translating a panic into an error
// so one request cannot take down the server.
func (p *Porter) run(rt router.Route, action controller.Action) (res resp.Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s panicked: %v", portage.ErrUnexpected, rt.View(), rec)
		}
	}()

	return action()
}

// respondErr translates err into an error Response and generates it.
//
// The error Response gets exactly one attempt; if generating it fails
// in turn, respondErr degrades to the Responder's last-resort Fail
// rather than recursing.
func (p *Porter) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	res := p.responder.Error(r, err)
	if genErr := res.Generate(w, r); genErr != nil {
		p.responder.Fail(w, r, genErr)
	}
}
