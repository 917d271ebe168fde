package portage_test

import (
	"testing"
	"time"

	"github.com/portageworks/portage"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	portage.Model

	Title string `db:"title" json:"title"`
	Views int    `db:"views" json:"views"`
}

func TestModelExists(t *testing.T) {
	require.False(t, testRecord{}.Exists())
	require.True(t, testRecord{Model: portage.Model{CreatedAt: time.Now()}}.Exists())
}

func TestAssignAttrs(t *testing.T) {
	t.Run("Not-A-Pointer", func(t *testing.T) {
		err := portage.AssignAttrs(testRecord{}, map[string]any{"title": "hi"})
		require.ErrorIs(t, err, portage.ErrNotValid)
	})

	t.Run("Declared-Columns", func(t *testing.T) {
		// Arrange
		rec := new(testRecord)

		// Act
		err := portage.AssignAttrs(rec, map[string]any{"title": "hello", "views": 3, "id": uint(7)})

		// Assert
		require.Nil(t, err)
		require.Equal(t, "hello", rec.Title)
		require.Equal(t, 3, rec.Views)
		require.Equal(t, uint(7), rec.ID)
	})

	t.Run("Undeclared-Column", func(t *testing.T) {
		// Arrange
		rec := new(testRecord)

		// Act
		err := portage.AssignAttrs(rec, map[string]any{"author": "nobody"})

		// Assert
		require.ErrorIs(t, err, portage.ErrNotValid)
	})

	t.Run("Wrong-Type", func(t *testing.T) {
		// Arrange
		rec := new(testRecord)

		// Act
		err := portage.AssignAttrs(rec, map[string]any{"views": "three"})

		// Assert
		require.ErrorIs(t, err, portage.ErrNotValid)
	})
}
