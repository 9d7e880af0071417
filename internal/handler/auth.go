package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/bookstore-service/internal/model"
)

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.authSvc.Register(c.Request().Context(), req); err != nil {
		return h.httpError(err)
	}
	return c.String(http.StatusCreated, "ok")
}

func (h *Handler) Login(c echo.Context) error {
	var credentials model.AuthRequest
	if err := c.Bind(&credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&credentials); err != nil {
		return err
	}

	response, err := h.authSvc.Login(c.Request().Context(), credentials)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, response)
}
