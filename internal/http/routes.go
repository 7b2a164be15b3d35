package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "gig-market.com/gig-market/internal/http/middlewares"
	"gig-market.com/gig-market/internal/services"
)

func Register(e *echo.Echo, h *Handler, authService *services.AuthService, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	api := e.Group("/api")

	api.GET("/health", h.Health)

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me, requireAuth)

	gigs := api.Group("/gigs")
	gigs.GET("", h.SearchGigs, optionalAuth)
	gigs.GET("/:id", h.GetGig, optionalAuth)
	gigs.POST("", h.CreateGig, requireAuth)
	gigs.GET("/my", h.ListMyGigs, requireAuth)
	gigs.PUT("/:id", h.UpdateGig, requireAuth)
	gigs.DELETE("/:id", h.DeleteGig, requireAuth)
	gigs.PUT("/:id/cancel", h.CancelGig, requireAuth)
	gigs.PUT("/:id/complete", h.CompleteGig, requireAuth)
	gigs.GET("/:id/bids", h.ListBidsForGig, requireAuth)

	bids := api.Group("/bids", requireAuth)
	bids.POST("", h.CreateBid)
	bids.GET("/my", h.ListMyBids)
	bids.PUT("/:id", h.UpdateBid)
	bids.DELETE("/:id", h.DeleteBid)
	bids.PUT("/:id/hire", h.HireBid)
}
