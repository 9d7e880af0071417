package csrf

import (
	"crypto/subtle"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/google/uuid"
)

// NewToken mints a per-session CSRF token. Issued at login, carried in the
// session claims, echoed back by state-changing form posts.
func NewToken() string {
	return uuid.NewString()
}

// Verify compares the session token against the submitted one in constant
// time. A missing token on either side fails closed.
func Verify(sessionToken, submittedToken string) error {
	if sessionToken == "" || submittedToken == "" {
		return errs.ErrAccessDenied
	}
	if subtle.ConstantTimeCompare([]byte(sessionToken), []byte(submittedToken)) != 1 {
		return errs.ErrAccessDenied
	}
	return nil
}
