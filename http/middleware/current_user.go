package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/session"
	"github.com/portageworks/portage/logger"
)

// A User is the entity CurrentUser injects into the request context.
type User interface {
	logger.LogUser
	HasAccess() bool
	HomePath() string
}

// The UserStorer fetches the User matching the ID stored in a session.
type UserStorer interface {
	GetByID(id uint) (User, error)
}

// CurrentUser pulls the user ID out of the request's session,
// fetches the matching User, and stores it under portage.CurrentUserKey.
//
// Requests without a registered user pass through unauthenticated.
// Users without access have their session deleted and are redirected
// to their home path.
//
// Run after InjectSession.
func CurrentUser(ls logger.Logger, store UserStorer) Adapter {
	if ls == nil || store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(portage.SessionKey).(session.Session)
			if !ok {
				h.ServeHTTP(w, r)
				return
			}

			id, err := s.UserID()
			if errors.Is(err, session.ErrNoUser) {
				h.ServeHTTP(w, r)
				return
			}

			if err != nil {
				ls.Error(fmt.Sprintf("failed reading user ID from session: %s", err), &logger.LogContext{Request: r})
				h.ServeHTTP(w, r)
				return
			}

			user, err := store.GetByID(id)
			if err != nil {
				ls.Error(fmt.Sprintf("failed fetching user %d: %s", id, err), &logger.LogContext{Request: r})
				h.ServeHTTP(w, r)
				return
			}

			if !user.HasAccess() {
				if err := s.Delete(w, r); err != nil {
					ls.Error(fmt.Sprintf("failed deleting session: %s", err), &logger.LogContext{Request: r, User: user})
				}

				http.Redirect(w, r, user.HomePath(), http.StatusTemporaryRedirect)
				return
			}

			ctx := context.WithValue(r.Context(), portage.CurrentUserKey, user)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
