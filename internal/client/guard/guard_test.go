package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dverbis/itemkeeper/internal/client/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		status session.Status
		want   Decision
	}{
		{session.StatusUnresolved, ShowLoading},
		{session.StatusAnonymous, RedirectToLogin},
		{session.StatusAuthenticated, RenderProtected},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			require.Equal(t, tt.want, Decide(tt.status))
		})
	}
}

func TestDecide_UnresolvedNeverRendersOrRedirects(t *testing.T) {
	d := Decide(session.StatusUnresolved)
	require.NotEqual(t, RenderProtected, d)
	require.NotEqual(t, RedirectToLogin, d)
}
