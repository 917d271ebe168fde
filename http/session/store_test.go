package session_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portageworks/portage"
	"github.com/portageworks/portage/http/session"
	"github.com/stretchr/testify/require"
)

var (
	testAuthKey    = strings.Repeat("ab", 32)
	testEncryptKey = strings.Repeat("cd", 16)
)

func TestNewStoreService(t *testing.T) {
	tcs := []struct {
		name string
		cfg  session.Config
		err  error
	}{
		{"Zero-Value", session.Config{}, portage.ErrNotValid},
		{
			"No-Session-Name",
			session.Config{Env: portage.Testing, AuthKey: testAuthKey, EncryptKey: testEncryptKey},
			portage.ErrBadConfig,
		},
		{
			"Bad-Auth-Key",
			session.Config{Env: portage.Testing, SessionName: "test", AuthKey: "not-hex", EncryptKey: testEncryptKey},
			portage.ErrBadConfig,
		},
		{
			"Bad-Encrypt-Key",
			session.Config{Env: portage.Testing, SessionName: "test", AuthKey: testAuthKey, EncryptKey: "not-hex"},
			portage.ErrBadConfig,
		},
		{
			"Valid",
			session.Config{Env: portage.Testing, SessionName: "test", AuthKey: testAuthKey, EncryptKey: testEncryptKey},
			nil,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.NewStoreService(tc.cfg)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestServiceGetSession(t *testing.T) {
	// Arrange
	s, err := session.NewStoreService(session.Config{
		Env:         portage.Testing,
		SessionName: "test",
		AuthKey:     testAuthKey,
		EncryptKey:  testEncryptKey,
	})
	require.Nil(t, err)

	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	sess, err := s.GetSession(r)

	// Assert
	require.Nil(t, err)
	require.Nil(t, sess.Get("missing"))
}
