package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/authz"
	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
	md "github.com/Astemirdum/bookstore-service/pkg/middleware"
	"github.com/Astemirdum/bookstore-service/pkg/validate"
)

type Handler struct {
	bookSvc   BookService
	personSvc PersonService
	authSvc   AuthService
	enqueuer  Enqueuer
	log       *zap.Logger
}

func New(bookSvc BookService, personSvc PersonService, authSvc AuthService, enqueuer Enqueuer, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:   bookSvc,
		personSvc: personSvc,
		authSvc:   authSvc,
		enqueuer:  enqueuer,
		log:       log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	e.Validator = validate.NewCustomValidator()
	e.Renderer = NewRenderer()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.POST("/register", h.Register)
	base.POST("/login", h.Login)

	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.JwtAuthentication,
	)

	viewBooks := authz.Require(authz.RequireAuthority(authz.ViewBooksList))
	createBook := authz.Require(authz.RequireAuthority(authz.CreateBook))
	viewPersons := authz.Require(authz.RequireAuthority(authz.ViewPersonsList))
	updatePerson := authz.Require(authz.RequireAuthority(authz.UpdatePerson))

	api.GET("/", h.Books, viewBooks)
	api.GET("/books", h.Books, viewBooks)
	api.GET("/books/search", h.SearchBooks, viewBooks)
	api.GET("/books/:id", h.Book)
	api.GET("/create-form", h.CreateForm, createBook)
	api.POST("/books", h.CreateBook, createBook)
	api.POST("/books/:id/comments", h.AddComment)
	api.POST("/books/:id/rating", h.RateBook)

	api.GET("/persons/:id", h.Person)
	api.GET("/myprofile", h.MyProfile, authz.Require(authz.RequireAuthority(authz.ViewMyProfile)))
	api.DELETE("/persons/:id", h.DeletePerson, updatePerson)
	api.POST("/update-person", h.UpdatePerson, updatePerson)
	api.GET("/persons", h.Persons, viewPersons)
	api.GET("/persons/search", h.SearchPersons, viewPersons)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps domain errors to responses. Unexpected errors are reported
// generically so store internals never leak to the client.
func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, errs.ErrNotFound.Error())
	case errors.Is(err, errs.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, errs.ErrUserExists.Error())
	default:
		h.log.Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func principal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
	}
	return p, nil
}
