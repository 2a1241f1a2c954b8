package utils

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "4f9c7a52-3b1e-4c1d-9a0e-2f7d1c6b8e10"

func TestJWTUtil_GenerateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	tokenString, err := jwtUtil.GenerateToken(testUserID)

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, testUserID, claims.User.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTUtil_GenerateToken_PayloadShape(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)

	tokenString, err := jwtUtil.GenerateToken(testUserID)
	require.NoError(t, err)

	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, map[string]any{"id": testUserID}, payload["user"])
	assert.Contains(t, payload, "iat")
	assert.NotContains(t, payload, "exp")
}

func TestJWTUtil_ValidateToken_NonExpiring(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)

	tokenString, _ := jwtUtil.GenerateToken(testUserID)

	claims, err := jwtUtil.ValidateToken(tokenString)

	assert.NoError(t, err)
	assert.Equal(t, testUserID, claims.User.ID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTUtil_ValidateToken_InvalidToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)

	_, err := jwtUtil.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_ExpiredToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", -time.Hour)

	tokenString, _ := jwtUtil.GenerateToken(testUserID)

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTUtil_ValidateToken_WrongSecret(t *testing.T) {
	jwtUtil1 := NewJWTUtil("secret1", 0)
	jwtUtil2 := NewJWTUtil("secret2", 0)

	tokenString, _ := jwtUtil1.GenerateToken(testUserID)

	_, err := jwtUtil2.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_InvalidSigningMethod(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)
	claims := &JWTClaims{User: TokenUser{ID: testUserID}}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signing method")
}

func TestJWTUtil_ValidateToken_MissingUser(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{})
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrMissingUserID)
}
