package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

var ErrAuthDisabled = errors.New("authentication is not configured")

type TokenData struct {
	Sub   string
	Email string
	Exp   int64
}

// Authenticator validates bearer tokens either against a shared HMAC secret
// or against the keys published at a JWKS URL.
type Authenticator struct {
	keyfunc jwt.Keyfunc
	methods []string
}

// NewAuthenticator returns nil (and no error) when neither secret nor
// jwksURL is set, meaning authentication is disabled.
func NewAuthenticator(secret, jwksURL string) (*Authenticator, error) {
	switch {
	case jwksURL != "":
		jwks, err := keyfunc.NewDefault([]string{jwksURL})
		if err != nil {
			return nil, fmt.Errorf("failed to create JWKS from resource at %s: %w", jwksURL, err)
		}
		log.Infof("JWKS initialized. Keys loaded from %s", jwksURL)
		return &Authenticator{keyfunc: jwks.Keyfunc, methods: []string{"RS256", "ES256"}}, nil

	case secret != "":
		key := []byte(secret)
		return &Authenticator{
			keyfunc: func(*jwt.Token) (any, error) { return key, nil },
			methods: []string{"HS256", "HS384", "HS512"},
		}, nil

	default:
		return nil, nil
	}
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func (a *Authenticator) ValidateToken(tokenString string) (*TokenData, error) {
	if a == nil {
		return nil, ErrAuthDisabled
	}

	clean := sanitizeToken(tokenString)
	token, err := jwt.Parse(clean, a.keyfunc, jwt.WithValidMethods(a.methods))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	return &TokenData{
		Sub:   getValue(claims, "sub"),
		Email: getValue(claims, "email"),
		Exp:   getInt64(claims, "exp"),
	}, nil
}

func (a *Authenticator) ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return a.ValidateToken(token)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
