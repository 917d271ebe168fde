package resp_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/resp"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	// Arrange
	inner := portage.NewError(http.StatusInternalServerError, "db gone")
	mid := fmt.Errorf("query failed: %w", inner)
	outer := fmt.Errorf("cannot load post: %w", mid)

	// Act
	entries := resp.Stack(outer)

	// Assert
	require.Len(t, entries, 3)
	require.Equal(t, outer.Error(), entries[0].Message)
	require.Equal(t, mid.Error(), entries[1].Message)
	require.Equal(t, inner.Error(), entries[2].Message)

	// NOTE(jay): only *portage.Error carries a construction site
	require.Zero(t, entries[0].Trace)
	require.Zero(t, entries[1].Trace)
	require.Contains(t, entries[2].Trace, "error_handler_test.go")
}

func TestStackNil(t *testing.T) {
	require.Empty(t, resp.Stack(nil))
}

func TestAcceptsJSON(t *testing.T) {
	tcs := []struct {
		name     string
		headers  map[string]string
		expected bool
	}{
		{"None", nil, false},
		{"Accept-HTML", map[string]string{"Accept": "text/html"}, false},
		{"Accept-JSON", map[string]string{"Accept": "application/json"}, true},
		{"Accept-Mixed", map[string]string{"Accept": "text/html, application/json"}, true},
		{"AJAX", map[string]string{"X-Requested-With": "XMLHttpRequest"}, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}

			require.Equal(t, tc.expected, resp.AcceptsJSON(r))
		})
	}
}

func TestErrorJSON(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{}, resp.WithShowDetails(true))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/nope", nil)
	r.Header.Set("Accept", "application/json")

	cause := fmt.Errorf("%w: /nope", portage.ErrRouteNotFound)
	err := fmt.Errorf("resolving failed: %w", cause)

	// Act
	res := d.Error(r, err)
	require.Nil(t, res.Generate(w, r))

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)

	var payload struct {
		Code   int               `json:"code"`
		Status string            `json:"status"`
		Stack  []resp.StackEntry `json:"stack"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, http.StatusNotFound, payload.Code)
	require.Equal(t, "Not Found", payload.Status)
	require.Len(t, payload.Stack, 3)
	require.Equal(t, err.Error(), payload.Stack[0].Message)
}

func TestErrorJSONWithoutDetails(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Accept", "application/json")

	// Act
	res := d.Error(r, portage.ErrUnexpected)
	require.Nil(t, res.Generate(w, r))

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "stack")
}

func TestErrorView(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{
		"error.view.tmpl": &fstest.MapFile{Data: []byte(`<h1>{{.code}} {{.status}}</h1>{{if .showDetails}}<pre>{{.error}}</pre>{{end}}`)},
	}, resp.WithShowDetails(true))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	res := d.Error(r, fmt.Errorf("%w: denied", portage.ErrUnauthorized))
	require.Nil(t, res.Generate(w, r))

	// Assert
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "403 Forbidden")
	require.Contains(t, w.Body.String(), "denied")
}

func TestErrorCodedError(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Accept", "application/json")

	// Act
	res := d.Error(r, portage.NewError(http.StatusTeapot, "short and stout"))
	require.Nil(t, res.Generate(w, r))

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}
