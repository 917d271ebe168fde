package logger_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portageworks/portage/logger"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	id    uint
	email string
}

func (u testUser) GetID() uint      { return u.id }
func (u testUser) GetEmail() string { return u.email }

func TestLogContextMarshalText(t *testing.T) {
	t.Run("Zero-Value", func(t *testing.T) {
		// Arrange
		lc := logger.LogContext{}

		// Act
		b, err := lc.MarshalText()

		// Assert
		require.Nil(t, err)
		require.JSONEq(t, `{}`, string(b))
	})

	t.Run("Full", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "https://example.com/blog/show/5", nil)
		lc := logger.LogContext{
			Data:    map[string]any{"attempt": 2},
			Error:   fmt.Errorf("out of cheese"),
			Request: r,
			User:    testUser{id: 42, email: "jay@example.com"},
		}

		// Act
		b, err := lc.MarshalText()

		// Assert
		require.Nil(t, err)
		require.JSONEq(t, `{
			"data": {"attempt": 2},
			"error": "out of cheese",
			"request": {"method": "GET", "url": "https://example.com/blog/show/5"},
			"user": {"id": 42, "email": "jay@example.com"}
		}`, string(b))
	})

	t.Run("Empty-User-Omitted", func(t *testing.T) {
		// Arrange
		lc := logger.LogContext{User: testUser{}}

		// Act
		b, err := lc.MarshalText()

		// Assert
		require.Nil(t, err)
		require.JSONEq(t, `{}`, string(b))
	})
}
