package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gig-market.com/gig-market/internal/constants"
	dto "gig-market.com/gig-market/internal/data_models"
	middleware "gig-market.com/gig-market/internal/http/middlewares"
	"gig-market.com/gig-market/internal/http/validators"
)

func (h *Handler) SearchGigs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	status := constants.GigStatus(c.QueryParam("status"))

	result, err := h.gigService.SearchGigs(c.Request().Context(), c.QueryParam("search"), status, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetGig(c echo.Context) error {
	gig, err := h.gigService.GetGig(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"gig": gig})
}

func (h *Handler) CreateGig(c echo.Context) error {
	var req dto.CreateGigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.Validate(&req); err != nil {
		return err
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), req.Title, req.Description, req.Budget, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"gig": gig})
}

func (h *Handler) ListMyGigs(c echo.Context) error {
	gigs, err := h.gigService.ListMyGigs(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(gigs),
		"gigs":  gigs,
	})
}

func (h *Handler) UpdateGig(c echo.Context) error {
	var req dto.UpdateGigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.Validate(&req); err != nil {
		return err
	}

	gig, err := h.gigService.UpdateGig(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Title, req.Description, req.Budget)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"gig": gig})
}

func (h *Handler) DeleteGig(c echo.Context) error {
	if err := h.gigService.DeleteGig(c.Request().Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "gig deleted successfully"})
}

func (h *Handler) CancelGig(c echo.Context) error {
	gig, err := h.gigService.CancelGig(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"gig": gig})
}

func (h *Handler) CompleteGig(c echo.Context) error {
	gig, err := h.gigService.CompleteGig(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"gig": gig})
}
