package http

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	errs "gig-market.com/gig-market/internal/errors"
	"gig-market.com/gig-market/internal/services"
)

type Handler struct {
	authService  *services.AuthService
	gigService   *services.GigService
	bidService   *services.BidService
	hireService  *services.HireService
	cookieMaxAge time.Duration
	secureCookie bool
}

func NewHandler(
	authService *services.AuthService,
	gigService *services.GigService,
	bidService *services.BidService,
	hireService *services.HireService,
	cookieMaxAge time.Duration,
	secureCookie bool,
) *Handler {
	return &Handler{
		authService:  authService,
		gigService:   gigService,
		bidService:   bidService,
		hireService:  hireService,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// httpError maps service errors onto transport errors. Taxonomy sentinels
// carry their own status; anything else is a 500.
func httpError(err error) error {
	var appErr *errs.Exception
	if stderrors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}

	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
