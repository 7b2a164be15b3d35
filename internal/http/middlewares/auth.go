package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"gig-market.com/gig-market/internal/services"
)

const (
	// UserIDKey is where the authenticated user id lives on the echo context.
	UserIDKey = "userID"

	// TokenCookie carries the session JWT.
	TokenCookie = "token"
)

// RequireAuth rejects requests without a valid session token. The token is
// read from the session cookie, with an Authorization bearer header as
// fallback for non-browser clients.
func RequireAuth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			userID, err := auth.VerifyToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// OptionalAuth resolves the user when a valid token is present and lets the
// request through either way.
func OptionalAuth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if userID, err := auth.VerifyToken(token); err == nil {
					c.Set(UserIDKey, userID)
				}
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
