package resp_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/link"
	"github.com/portageworks/portage/http/resp"
	"github.com/portageworks/portage/http/template"
	"github.com/portageworks/portage/logger"
	"github.com/stretchr/testify/require"
)

type stubAuth struct{ loggedIn bool }

func (s stubAuth) AuthState(r *http.Request) resp.AuthState {
	return resp.AuthState{LoggedIn: s.loggedIn}
}

func quietLogger() logger.Logger {
	return logger.New(logger.WithLevel(logger.LogLevelFatal))
}

func newResponder(files fstest.MapFS, opts ...resp.ResponderOptFn) *resp.Responder {
	all := append([]resp.ResponderOptFn{
		resp.WithLogger(quietLogger()),
		resp.WithParser(template.NewParser(template.WithFS(files))),
	}, opts...)

	return resp.NewResponder(all...)
}

func TestRenderBareView(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{
		"Blog/show.view.tmpl": &fstest.MapFile{Data: []byte(`<p>post {{.id}}</p>`)},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/blog/show/5", nil)

	// Act
	err := resp.NewView(d, "Blog/show", map[string]any{"id": "5"}).Generate(w, r)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=UTF-8", w.Header().Get("Content-Type"))
	require.Equal(t, `<p>post 5</p>`, w.Body.String())
}

func TestRenderLayout(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{
		"Blog/show.view.tmpl":          &fstest.MapFile{Data: []byte(`<p>post {{.id}}</p>`)},
		"application.layout.view.tmpl": &fstest.MapFile{Data: []byte(`<main>{{.content}}</main>`)},
	}, resp.WithLayout("application"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/blog/show/5", nil)

	// Act
	err := resp.NewView(d, "Blog/show", map[string]any{"id": "5"}).Generate(w, r)

	// Assert
	require.Nil(t, err)
	// NOTE(jay): the captured view output must not be re-escaped by the layout
	require.Equal(t, `<main><p>post 5</p></main>`, w.Body.String())
}

func TestRenderMissingViewWritesNothing(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	err := resp.NewView(d, "Blog/show", nil).Generate(w, r)

	// Assert
	require.ErrorIs(t, err, resp.ErrRender)
	require.Zero(t, w.Body.Len())
}

func TestRenderBrokenLayoutWritesNothing(t *testing.T) {
	// Arrange
	d := newResponder(fstest.MapFS{
		"Blog/show.view.tmpl":          &fstest.MapFile{Data: []byte(`<p>fine</p>`)},
		"application.layout.view.tmpl": &fstest.MapFile{Data: []byte(`{{template "missing"}}`)},
	}, resp.WithLayout("application"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	err := resp.NewView(d, "Blog/show", nil).Generate(w, r)

	// Assert
	require.ErrorIs(t, err, resp.ErrRender)
	require.Zero(t, w.Body.Len(), "a layout failure must leave the client untouched")
}

func TestRenderHelpers(t *testing.T) {
	// Arrange
	base, err := url.Parse("https://example.com")
	require.Nil(t, err)

	d := newResponder(fstest.MapFS{
		"Home/index.view.tmpl": &fstest.MapFile{
			Data: []byte(`{{if .auth.LoggedIn}}in {{end}}{{call .link "Blog/show" "id" "5"}}`),
		},
	},
		resp.WithAuth(stubAuth{loggedIn: true}),
		resp.WithLinks(link.NewGenerator(base, nil)),
	)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	err = resp.NewView(d, "Home/index", nil).Generate(w, r)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "in /blog/show/id/5", w.Body.String())
}

func TestFail(t *testing.T) {
	t.Run("Coded", func(t *testing.T) {
		// Arrange
		d := newResponder(fstest.MapFS{})
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		d.Fail(w, r, portage.ErrRouteNotFound)

		// Assert
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Never-Below-400", func(t *testing.T) {
		// Arrange
		d := newResponder(fstest.MapFS{})
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

		// Act
		d.Fail(w, r, nil)

		// Assert
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
