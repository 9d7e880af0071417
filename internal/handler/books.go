package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/bookstore-service/internal/model"
)

func (h *Handler) Books(c echo.Context) error {
	books, err := h.bookSvc.ListBooks(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, "books", echo.Map{"books": books})
}

func (h *Handler) Book(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	p, err := principal(c)
	if err != nil {
		return err
	}

	view, err := h.bookSvc.GetBookView(c.Request().Context(), id, p)
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, "book", echo.Map{
		"book":       view,
		"comments":   view.ViewComments,
		"userRating": view.UserRating,
	})
}

func (h *Handler) CreateForm(c echo.Context) error {
	genres, err := h.bookSvc.ListGenres(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.Render(http.StatusOK, "create-form", echo.Map{"genres": genres})
}

func (h *Handler) SearchBooks(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("query is required"))
	}
	books, err := h.bookSvc.SearchBooks(c.Request().Context(), query)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var book model.NewBook
	if err := c.Bind(&book); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&book); err != nil {
		return err
	}
	p, err := principal(c)
	if err != nil {
		return err
	}

	id, err := h.bookSvc.CreateBook(c.Request().Context(), book)
	if err != nil {
		return h.httpError(err)
	}
	h.audit(actionCreateBook, p.ID, "book", id)

	return c.Redirect(http.StatusFound, fmt.Sprintf("/books?id=%d", id))
}

func (h *Handler) AddComment(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	var comment model.NewComment
	if err := c.Bind(&comment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&comment); err != nil {
		return err
	}
	p, err := principal(c)
	if err != nil {
		return err
	}

	if _, err := h.bookSvc.AddComment(c.Request().Context(), bookID, p.ID, comment.Comment); err != nil {
		return h.httpError(err)
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("/books/%d", bookID))
}

func (h *Handler) RateBook(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	var rating model.NewRating
	if err := c.Bind(&rating); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&rating); err != nil {
		return err
	}
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.bookSvc.RateBook(c.Request().Context(), bookID, p.ID, rating.Rating); err != nil {
		return h.httpError(err)
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("/books/%d", bookID))
}
