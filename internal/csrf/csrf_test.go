package csrf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/bookstore-service/internal/csrf"
	"github.com/Astemirdum/bookstore-service/internal/errs"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name      string
		session   string
		submitted string
		wantErr   bool
	}{
		{name: "match", session: "tok-1", submitted: "tok-1"},
		{name: "mismatch", session: "tok-1", submitted: "tok-2", wantErr: true},
		{name: "missing session fails closed", session: "", submitted: "tok-1", wantErr: true},
		{name: "missing submitted", session: "tok-1", submitted: "", wantErr: true},
		{name: "both missing", session: "", submitted: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := csrf.Verify(tt.session, tt.submitted)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrAccessDenied)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewToken(t *testing.T) {
	t.Parallel()
	a, b := csrf.NewToken(), csrf.NewToken()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
