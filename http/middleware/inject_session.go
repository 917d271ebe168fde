package middleware

import (
	"context"
	"net/http"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/session"
)

// InjectSession stores the session for the request under portage.SessionKey
// so later middlewares and handlers need not fetch it again.
//
// if store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), portage.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
