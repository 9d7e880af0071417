package authz

import (
	"net/http"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
	"github.com/labstack/echo/v4"
)

// Canonical authority names. The legacy data had both VEIW_PERSONS_LIST and
// VIEW_PERSONS_LIST for the same permission; only the latter is recognized.
const (
	ViewBooksList   = "VIEW_BOOKS_LIST"
	CreateBook      = "CREATE_BOOK"
	ViewPerson      = "VIEW_PERSON"
	ViewMyProfile   = "VIEW_MY_PROFILE"
	UpdatePerson    = "UPDATE_PERSON"
	ViewPersonsList = "VIEW_PERSONS_LIST"
)

// Predicate decides allow (nil) or deny for one request. Predicates run in
// order and short-circuit on the first deny, before any handler logic.
type Predicate func(p auth.Principal, c echo.Context) error

func RequireAuthority(name string) Predicate {
	return func(p auth.Principal, _ echo.Context) error {
		if !p.HasAuthority(name) {
			return errs.ErrAccessDenied
		}
		return nil
	}
}

// Require gates a route with an ordered predicate pipeline. A request without
// a principal in context is denied outright.
func Require(preds ...Predicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := auth.PrincipalFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
			}
			for _, pred := range preds {
				if err := pred(p, c); err != nil {
					return echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
				}
			}
			return next(c)
		}
	}
}

// OwnerOrAuthority allows a principal acting on its own resource regardless of
// grants, and on others' resources only with the fallback authority.
func OwnerOrAuthority(p auth.Principal, ownerID int, fallback string) bool {
	return p.ID == ownerID || p.HasAuthority(fallback)
}
