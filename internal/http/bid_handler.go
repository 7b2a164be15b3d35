package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "gig-market.com/gig-market/internal/data_models"
	middleware "gig-market.com/gig-market/internal/http/middlewares"
	"gig-market.com/gig-market/internal/http/validators"
)

func (h *Handler) CreateBid(c echo.Context) error {
	var req dto.CreateBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.Validate(&req); err != nil {
		return err
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), req.GigID, middleware.UserID(c), req.Message, req.ProposedPrice)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"bid": bid})
}

func (h *Handler) ListBidsForGig(c echo.Context) error {
	bids, err := h.bidService.ListBidsForGig(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(bids),
		"bids":  bids,
	})
}

func (h *Handler) ListMyBids(c echo.Context) error {
	bids, err := h.bidService.ListMyBids(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(bids),
		"bids":  bids,
	})
}

func (h *Handler) UpdateBid(c echo.Context) error {
	var req dto.UpdateBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.Validate(&req); err != nil {
		return err
	}

	bid, err := h.bidService.UpdateBid(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Message, req.ProposedPrice)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"bid": bid})
}

func (h *Handler) DeleteBid(c echo.Context) error {
	if err := h.bidService.DeleteBid(c.Request().Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "bid deleted successfully"})
}

// HireBid selects the winning bid for a gig. The interesting work happens
// in the hire service; here we only translate the outcome.
func (h *Handler) HireBid(c echo.Context) error {
	hired, err := h.hireService.Hire(c.Request().Context(), c.QueryParam("gig_id"), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "freelancer hired successfully",
		"bid":     hired.Bid,
		"gig":     hired.Gig,
		"bidder":  hired.Bidder,
	})
}
