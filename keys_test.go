package portage_test

import (
	"testing"

	"github.com/portageworks/portage"
	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	tcs := []struct {
		key      portage.Key
		expected string
	}{
		{portage.CurrentUserKey, "portage context key: CurrentUserKey"},
		{portage.IpAddrKey, "portage context key: IpAddrKey"},
		{portage.RequestIDKey, "portage context key: RequestIDKey"},
		{portage.RouteKey, "portage context key: RouteKey"},
		{portage.SessionKey, "portage context key: SessionKey"},
	}

	for _, tc := range tcs {
		t.Run(string(tc.key), func(t *testing.T) {
			require.Equal(t, tc.expected, tc.key.String())
		})
	}
}
