// Package link builds URLs pointing back into the app
// from controller-action destinations.
package link

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/portageworks/portage"
)

// A Generator turns "Controller/action" destinations into URLs.
//
// A Validator - usually backed by the app's controller registry -
// gates destinations so typos fail loudly instead of producing dead links.
type Generator struct {
	base  *url.URL
	valid func(controller, action string) bool
}

// NewGenerator constructs a *Generator rooted at base.
// valid may be nil, in which case every destination is trusted.
func NewGenerator(base *url.URL, valid func(controller, action string) bool) *Generator {
	return &Generator{base: base, valid: valid}
}

// URL builds the URL for destination, a "Controller/action" pair.
//
// With appendParams, params become a query string;
// without, each pair becomes two path segments, ordered by key.
// With absolute, the URL is resolved against the Generator's base.
//
// Destinations that do not name a known controller-action pair
// fail wrapping portage.ErrInvalidDestination.
func (g *Generator) URL(destination string, params url.Values, absolute, appendParams bool) (string, error) {
	parts := strings.Split(destination, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", portage.ErrInvalidDestination, destination)
	}

	controller, action := parts[0], parts[1]
	if g.valid != nil && !g.valid(controller, action) {
		return "", fmt.Errorf("%w: %q", portage.ErrInvalidDestination, destination)
	}

	u := &url.URL{Path: "/" + strings.ToLower(controller) + "/" + action}

	if len(params) > 0 {
		if appendParams {
			u.RawQuery = params.Encode()
		} else {
			keys := make([]string, 0, len(params))
			for k := range params {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				for _, v := range params[k] {
					u.Path += "/" + url.PathEscape(k) + "/" + url.PathEscape(v)
				}
			}
		}
	}

	if absolute {
		if g.base == nil {
			return "", fmt.Errorf("%w: no base URL configured", portage.ErrBadConfig)
		}

		return g.base.ResolveReference(u).String(), nil
	}

	return u.String(), nil
}
