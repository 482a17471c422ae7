package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticatorDisabled(t *testing.T) {
	auth, err := NewAuthenticator("", "")
	require.NoError(t, err)
	assert.Nil(t, auth)

	_, err = auth.ValidateToken("Bearer whatever")
	assert.ErrorIs(t, err, ErrAuthDisabled)
}

func TestAuthenticatorHMAC(t *testing.T) {
	auth, err := NewAuthenticator("s3cret", "")
	require.NoError(t, err)

	token := signHS256(t, "s3cret", jwt.MapClaims{
		"sub":   "analyst-1",
		"email": "analista@hotelrp.com.br",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	data, err := auth.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "analyst-1", data.Sub)
	assert.Equal(t, "analista@hotelrp.com.br", data.Email)
	assert.NotZero(t, data.Exp)
}

func TestAuthenticatorRejects(t *testing.T) {
	auth, err := NewAuthenticator("s3cret", "")
	require.NoError(t, err)

	wrongKey := signHS256(t, "other", jwt.MapClaims{"sub": "x", "exp": time.Now().Add(time.Hour).Unix()})
	_, err = auth.ValidateToken("Bearer " + wrongKey)
	assert.Error(t, err)

	expired := signHS256(t, "s3cret", jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()})
	_, err = auth.ValidateToken(expired)
	assert.Error(t, err)

	_, err = auth.ValidateToken("")
	assert.Error(t, err)
}
