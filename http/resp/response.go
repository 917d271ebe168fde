package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/portageworks/portage"
)

// A Response is a deferred output action a controller action hands back
// to the dispatcher.
//
// A Response moves from constructed to generated exactly once:
// Generate writes directly to the client and calling it a second time
// on the same instance panics, since recovering would mean silently
// double-emitting output.
type Response interface {
	Code() int
	SetCode(int)
	Generate(w http.ResponseWriter, r *http.Request) error
}

// state carries the pieces every Response shares.
type state struct {
	code      int
	generated bool
}

// Code returns the status code set on the Response, 0 when unset.
func (s *state) Code() int { return s.code }

// SetCode sets the response status code. It may be called any number
// of times before Generate runs.
func (s *state) SetCode(c int) { s.code = c }

// begin transitions the Response to its generated state.
func (s *state) begin() {
	if s.generated {
		panic("resp: Generate called twice on the same Response")
	}

	s.generated = true
}

// A JSON response serializes its data as an application/json body.
type JSON struct {
	state
	data any
}

// NewJSON constructs a *JSON carrying data.
func NewJSON(data any) *JSON { return &JSON{data: data} }

// Generate writes the serialized data to the client,
// defaulting the status code to 200.
//
// The body is prerendered, so nothing reaches the client when
// serialization fails.
func (j *JSON) Generate(w http.ResponseWriter, r *http.Request) error {
	j.begin()

	b, err := json.Marshal(j.data)
	if err != nil {
		return fmt.Errorf("%w: cannot serialize: %s", portage.ErrNotValid, err)
	}

	code := j.code
	if code == 0 {
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := bytes.NewBuffer(b).WriteTo(w); err != nil {
		return err
	}

	return nil
}

// A Redirect response sends the client to another URL; it has no body.
type Redirect struct {
	state
	url string
}

// NewRedirect constructs a *Redirect targeting url.
func NewRedirect(url string) *Redirect { return &Redirect{url: url} }

// URL returns the redirect target.
func (rd *Redirect) URL() string { return rd.url }

// Generate writes the Location header and a redirect status.
//
// The default status code is 302.
// If SetCode set the status to something other than standard redirect
// 3xx statuses, Generate overwrites it with an appropriate 3xx status.
func (rd *Redirect) Generate(w http.ResponseWriter, r *http.Request) error {
	rd.begin()

	if rd.url == "" {
		return fmt.Errorf("%w: cannot redirect, no url", portage.ErrMissingData)
	}

	code := rd.code
	switch {
	case code >= http.StatusMultipleChoices && code <= http.StatusPermanentRedirect:
		// NOTE(jay): code is already a 3xx, so do nothing
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		code = http.StatusSeeOther
	case code >= http.StatusInternalServerError:
		code = http.StatusTemporaryRedirect
	default:
		code = http.StatusFound
	}

	http.Redirect(w, r, rd.url, code)
	return nil
}

// A View response composes a named view template with the app's
// configured root layout, if any.
//
// A View holds the *Responder it was built from; the Responder supplies
// the parser, layout configuration, and view helpers at Generate time.
type View struct {
	state
	d    *Responder
	name string
	data map[string]any
}

// NewView constructs a *View rendering the named view with data.
func NewView(d *Responder, name string, data map[string]any) *View {
	if data == nil {
		data = make(map[string]any)
	}

	return &View{d: d, name: name, data: data}
}

// Name returns the conventional view identifier the View renders.
func (v *View) Name() string { return v.name }

// Generate renders the view, wraps it in the configured layout,
// and writes the result to the client.
//
// Output is prerendered into pooled buffers, so a template failure on
// either the view or the layout leaves the client untouched.
func (v *View) Generate(w http.ResponseWriter, r *http.Request) error {
	v.begin()

	if v.d == nil {
		return fmt.Errorf("%w: View built without a Responder", portage.ErrBadConfig)
	}

	return v.d.render(w, r, v)
}
