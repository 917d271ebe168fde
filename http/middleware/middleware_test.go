package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portageworks/portage/http/middleware"
	"github.com/stretchr/testify/require"
)

func NoopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func TestChain(t *testing.T) {
	// Arrange
	var order []string
	tag := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	middleware.Chain(NoopHandler(), tag("first"), tag("second"), tag("third")).ServeHTTP(w, r)

	// Assert
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestNoopAdapter(t *testing.T) {
	h := NoopHandler()
	require.Equal(t, h, middleware.NoopAdapter(h))
}
