package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/portageworks/portage/http/template"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Zero-Value", func(t *testing.T) {
		// Arrange
		p := template.NewParser()

		// Act
		_, err := p.Parse()

		// Assert
		require.ErrorIs(t, err, template.ErrNoFiles)
	})

	t.Run("Empty-Paths-Dropped", func(t *testing.T) {
		// Arrange
		p := template.NewParser()

		// Act
		_, err := p.Parse("")

		// Assert
		require.ErrorIs(t, err, template.ErrNoFiles)
	})

	t.Run("Parses", func(t *testing.T) {
		// Arrange
		files := fstest.MapFS{
			"Blog/show.view.tmpl": &fstest.MapFile{Data: []byte(`<p>{{.title}}</p>`)},
		}
		p := template.NewParser(template.WithFS(files))

		// Act
		tmpl, err := p.Parse("Blog/show.view.tmpl")

		// Assert
		require.Nil(t, err)

		b := new(strings.Builder)
		require.Nil(t, tmpl.ExecuteTemplate(b, "show.view.tmpl", map[string]any{"title": "hi"}))
		require.Equal(t, "<p>hi</p>", b.String())
	})

	t.Run("With-Fn", func(t *testing.T) {
		// Arrange
		files := fstest.MapFS{
			"greet.view.tmpl": &fstest.MapFile{Data: []byte(`{{shout "hi"}}`)},
		}
		p := template.NewParser(
			template.WithFS(files),
			template.WithFn("shout", strings.ToUpper),
		)

		// Act
		tmpl, err := p.Parse("greet.view.tmpl")

		// Assert
		require.Nil(t, err)

		b := new(strings.Builder)
		require.Nil(t, tmpl.ExecuteTemplate(b, "greet.view.tmpl", nil))
		require.Equal(t, "HI", b.String())
	})
}

func TestNonce(t *testing.T) {
	// Arrange + Act
	name, fn := template.Nonce()

	// Assert
	require.Equal(t, "nonce", name)
	require.NotEqual(t, fn(), fn())
}

func TestRootUrl(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		name, fn := template.RootUrl(nil)
		require.Equal(t, "rootUrl", name)
		require.Zero(t, fn())
	})
}
