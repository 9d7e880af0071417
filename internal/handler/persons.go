package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/bookstore-service/internal/authz"
	"github.com/Astemirdum/bookstore-service/internal/csrf"
	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
)

// Person serves /persons/:id. A principal may always view itself; viewing
// someone else needs the VIEW_PERSON authority.
func (h *Handler) Person(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	p, err := principal(c)
	if err != nil {
		return err
	}
	if !authz.OwnerOrAuthority(p, id, authz.ViewPerson) {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
	}

	person, err := h.personSvc.GetPerson(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, "person", echo.Map{
		"person":    person,
		"csrfToken": p.CSRFToken,
	})
}

func (h *Handler) MyProfile(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	person, err := h.personSvc.GetPerson(c.Request().Context(), p.ID)
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, "person", echo.Map{
		"person":    person,
		"csrfToken": p.CSRFToken,
	})
}

func (h *Handler) DeletePerson(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.personSvc.DeletePerson(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	h.audit(actionDeletePerson, p.ID, "person", id)

	return c.NoContent(http.StatusNoContent)
}

// UpdatePerson checks the CSRF token and the self-match before touching the
// store; a principal may only update its own record.
func (h *Handler) UpdatePerson(c echo.Context) error {
	var person model.UpdatePerson
	if err := c.Bind(&person); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := csrf.Verify(p.CSRFToken, person.CSRFToken); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
	}
	if person.ID != p.ID {
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrAccessDenied.Error())
	}
	if err := c.Validate(&person); err != nil {
		return err
	}

	if err := h.personSvc.UpdatePerson(c.Request().Context(), person); err != nil {
		return h.httpError(err)
	}
	h.audit(actionUpdatePerson, p.ID, "person", person.ID)

	return c.Redirect(http.StatusFound, fmt.Sprintf("/persons/%d", person.ID))
}

func (h *Handler) Persons(c echo.Context) error {
	persons, err := h.personSvc.ListPersons(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, "persons", echo.Map{"persons": persons})
}

func (h *Handler) SearchPersons(c echo.Context) error {
	searchTerm := c.QueryParam("searchTerm")
	if searchTerm == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("searchTerm is required"))
	}
	persons, err := h.personSvc.SearchPersons(c.Request().Context(), searchTerm)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, persons)
}
