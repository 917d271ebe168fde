package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// Compress gzips response bodies when the client accepts it.
func Compress() Adapter {
	return func(h http.Handler) http.Handler {
		return handlers.CompressHandler(h)
	}
}

// ProxyHeaders populates the request with values from de facto proxy headers
// such as X-Forwarded-For and X-Forwarded-Proto.
//
// Only use behind a trusted reverse proxy.
func ProxyHeaders() Adapter {
	return func(h http.Handler) http.Handler {
		return handlers.ProxyHeaders(h)
	}
}
