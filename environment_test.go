package portage_test

import (
	"testing"
	"time"

	"github.com/portageworks/portage"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentValid(t *testing.T) {
	for _, env := range []portage.Environment{
		portage.Demo,
		portage.Development,
		portage.Production,
		portage.Review,
		portage.Staging,
		portage.Testing,
	} {
		t.Run(env.String(), func(t *testing.T) {
			require.Nil(t, env.Valid())
		})
	}

	t.Run("Zero-Value", func(t *testing.T) {
		require.ErrorIs(t, portage.Environment("").Valid(), portage.ErrNotValid)
	})

	t.Run("Lowercase", func(t *testing.T) {
		require.ErrorIs(t, portage.Environment("production").Valid(), portage.ErrNotValid)
	})
}

func TestEnvironmentPredicates(t *testing.T) {
	require.True(t, portage.Testing.IsTesting())
	require.True(t, portage.Development.IsDevelopment())
	require.True(t, portage.Production.IsProduction())
	require.False(t, portage.Testing.IsProduction())
}

func TestEnvVarOrBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "TRUE")
	require.True(t, portage.EnvVarOrBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL", "false")
	require.False(t, portage.EnvVarOrBool("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "banana")
	require.True(t, portage.EnvVarOrBool("TEST_BOOL", true))
}

func TestEnvVarOrDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "150ms")
	require.Equal(t, 150*time.Millisecond, portage.EnvVarOrDuration("TEST_DUR", time.Second))

	t.Setenv("TEST_DUR", "")
	require.Equal(t, time.Second, portage.EnvVarOrDuration("TEST_DUR", time.Second))
}

func TestEnvVarOrEnv(t *testing.T) {
	t.Setenv("TEST_ENV", "staging")
	require.Equal(t, portage.Staging, portage.EnvVarOrEnv("TEST_ENV", portage.Development))

	t.Setenv("TEST_ENV", "")
	require.Equal(t, portage.Development, portage.EnvVarOrEnv("TEST_ENV", portage.Development))

	t.Setenv("TEST_ENV", "banana")
	require.Equal(t, portage.Development, portage.EnvVarOrEnv("TEST_ENV", portage.Development))
}

func TestEnvVarOrInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	require.Equal(t, 42, portage.EnvVarOrInt("TEST_INT", 7))

	t.Setenv("TEST_INT", "not-a-number")
	require.Equal(t, 7, portage.EnvVarOrInt("TEST_INT", 7))
}

func TestEnvVarOrString(t *testing.T) {
	t.Setenv("TEST_STRING", "set")
	require.Equal(t, "set", portage.EnvVarOrString("TEST_STRING", "default"))

	t.Setenv("TEST_STRING", "")
	require.Equal(t, "default", portage.EnvVarOrString("TEST_STRING", "default"))
}

func TestEnvVarOrURL(t *testing.T) {
	t.Setenv("TEST_URL", "https://example.com/app")
	require.Equal(t, "https://example.com/app", portage.EnvVarOrURL("TEST_URL", "http://localhost:3000").String())

	t.Setenv("TEST_URL", "")
	require.Equal(t, "http://localhost:3000", portage.EnvVarOrURL("TEST_URL", "http://localhost:3000").String())

	t.Setenv("TEST_URL", "://nope")
	require.Equal(t, "http://localhost:3000", portage.EnvVarOrURL("TEST_URL", "http://localhost:3000").String())
}
