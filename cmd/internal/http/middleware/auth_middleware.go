package middleware

import (
	"errors"
	"net/http"

	"hotelrp/cmd/internal/utils"
	"hotelrp/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenValidator interface {
	ParseTokenDataCtx(c echo.Context) (*utils.TokenData, error)
}

type AuthMiddlewareConfig struct {
	// Validator is nil when authentication is disabled.
	Validator TokenValidator
}

// NewAuthMiddleware rejects requests without a valid bearer token and stores
// the token data in the context. With no validator every request passes.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Validator == nil {
				return next(c)
			}

			tokenData, err := cfg.Validator.ParseTokenDataCtx(c)
			if errors.Is(err, utils.ErrAuthDisabled) {
				return next(c)
			}
			if err != nil {
				log.Debugf("rejected token on %s %s: %v", c.Request().Method, c.Path(), err)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.TokenContextKey, tokenData)
			return next(c)
		}
	}
}
