package middleware_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/middleware"
	"github.com/portageworks/portage/logger"
	"github.com/stretchr/testify/require"
)

func TestLogRequest(t *testing.T) {
	t.Run("Nil-Logger", func(t *testing.T) {
		require.NotPanics(t, func() {
			middleware.LogRequest(nil)(NoopHandler()).ServeHTTP(
				httptest.NewRecorder(),
				httptest.NewRequest(http.MethodGet, "https://example.com", nil),
			)
		})
	})

	t.Run("Logs-Method-And-Path", func(t *testing.T) {
		// Arrange
		buf := new(bytes.Buffer)
		ls := logger.New(logger.WithLogger(log.New(buf, "", 0)))
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com/blog/list", nil)

		// Act
		middleware.LogRequest(ls)(NoopHandler()).ServeHTTP(w, r)

		// Assert
		require.Contains(t, buf.String(), "GET /blog/list")
	})

	t.Run("Scrubs-Password", func(t *testing.T) {
		// Arrange
		buf := new(bytes.Buffer)
		ls := logger.New(logger.WithLogger(log.New(buf, "", 0)))
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "https://example.com/login?password=hunter2", nil)

		// Act
		middleware.LogRequest(ls)(NoopHandler()).ServeHTTP(w, r)

		// Assert
		require.NotContains(t, buf.String(), "hunter2")
		require.Contains(t, buf.String(), "password=xxxxxxx")
	})

	t.Run("Prepends-IP", func(t *testing.T) {
		// Arrange
		buf := new(bytes.Buffer)
		ls := logger.New(logger.WithLogger(log.New(buf, "", 0)))
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com/blog/list", nil)
		r = r.Clone(context.WithValue(r.Context(), portage.IpAddrKey, "203.0.113.9"))

		// Act
		middleware.LogRequest(ls)(NoopHandler()).ServeHTTP(w, r)

		// Assert
		require.Contains(t, buf.String(), "203.0.113.9 GET /blog/list")
	})
}
