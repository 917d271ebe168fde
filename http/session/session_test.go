package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portageworks/portage/http/session"
	"github.com/stretchr/testify/require"
)

func TestSessionValues(t *testing.T) {
	// Arrange
	stub := session.NewStub(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, err := stub.GetSession(r)
	require.Nil(t, err)

	// Act + Assert
	require.Nil(t, s.Set(w, r, "theme", "dark"))
	require.Equal(t, "dark", s.Get("theme"))

	require.Nil(t, s.Save(w, r))
	require.Nil(t, s.ResetExpiry(w, r))
}

func TestSessionUser(t *testing.T) {
	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		stub := session.NewStub(false)
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		s, err := stub.GetSession(r)
		require.Nil(t, err)

		// Act
		_, err = s.UserID()

		// Assert
		require.ErrorIs(t, err, session.ErrNoUser)
	})

	t.Run("Register-Deregister", func(t *testing.T) {
		// Arrange
		stub := session.NewStub(false)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		s, err := stub.GetSession(r)
		require.Nil(t, err)

		// Act + Assert
		require.Nil(t, s.RegisterUser(w, r, 42))
		id, err := s.UserID()
		require.Nil(t, err)
		require.Equal(t, uint(42), id)

		require.Nil(t, s.DeregisterUser(w, r))
		_, err = s.UserID()
		require.ErrorIs(t, err, session.ErrNoUser)
	})

	t.Run("Stubbed-Login", func(t *testing.T) {
		// Arrange
		stub := session.NewStub(true)
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		s, err := stub.GetSession(r)
		require.Nil(t, err)

		// Act
		id, err := s.UserID()

		// Assert
		require.Nil(t, err)
		require.Equal(t, uint(1), id)
	})
}

func TestSessionFlashes(t *testing.T) {
	// Arrange
	stub := session.NewStub(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	s, err := stub.GetSession(r)
	require.Nil(t, err)

	f := session.Flash{Class: session.FlashSuccess, Msg: "saved"}

	// Act
	require.Nil(t, s.SetFlash(w, r, f))
	first := s.Flashes(w, r)
	second := s.Flashes(w, r)

	// Assert
	require.Equal(t, []session.Flash{f}, first)
	require.Empty(t, second, "flashes are consumed once accessed")
}
