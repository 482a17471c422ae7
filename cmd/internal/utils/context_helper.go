package utils

import (
	"github.com/labstack/echo/v4"
)

const TokenContextKey = "token"

// GetTokenFromContext returns the caller's token data, or nil on routes that
// are not guarded (or when authentication is disabled).
func GetTokenFromContext(c echo.Context) *TokenData {
	val, ok := c.Get(TokenContextKey).(*TokenData)
	if !ok {
		return nil
	}
	return val
}

// Actor names the caller for audit notes, "anonymous" when unauthenticated.
func Actor(c echo.Context) string {
	if td := GetTokenFromContext(c); td != nil && td.Sub != "" {
		if td.Email != "" {
			return td.Email
		}
		return td.Sub
	}
	return "anonymous"
}
