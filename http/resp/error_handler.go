package resp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/logger"
)

// A StackEntry is one link of an error chain,
// as carried by a JSON error payload.
type StackEntry struct {
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// Error translates err into the Response matching the client's expectations.
//
// JSON clients receive a payload of the status code and message, plus -
// only when WithShowDetails is on - a "stack" of the error chain walked
// outermost to innermost.
// Browser clients receive the configured error view bound with the error
// and the details flag.
//
// In both cases the Response's status code mirrors portage.HTTPStatus(err).
// Error never fails; it only constructs. If generating the returned
// Response fails in turn, callers degrade to Fail - never a second
// error view.
func (d *Responder) Error(r *http.Request, err error) Response {
	code := portage.HTTPStatus(err)
	d.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r})

	if AcceptsJSON(r) {
		payload := map[string]any{
			"code":   code,
			"status": http.StatusText(code),
		}
		if d.showDetails {
			payload["stack"] = Stack(err)
		}

		js := NewJSON(payload)
		js.SetCode(code)
		return js
	}

	v := NewView(d, d.errView, map[string]any{
		"code":        code,
		"status":      http.StatusText(code),
		"error":       err.Error(),
		"showDetails": d.showDetails,
	})
	v.SetCode(code)
	return v
}

// Stack walks err's chain of causes from outermost to innermost,
// terminating when a cause is absent.
// Errors constructed by portage.NewError or portage.WrapError
// contribute their construction site as the trace.
func Stack(err error) []StackEntry {
	entries := make([]StackEntry, 0)
	for err != nil {
		entry := StackEntry{Message: err.Error()}
		if pe, ok := err.(*portage.Error); ok {
			entry.Trace = pe.Origin()
		}

		entries = append(entries, entry)
		err = errors.Unwrap(err)
	}

	return entries
}

// AcceptsJSON asserts whether the request expects a structured reply,
// either by Accept header or by the conventional AJAX marker.
func AcceptsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
