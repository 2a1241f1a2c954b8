package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingUserID is returned for a well-signed token that names no user.
var ErrMissingUserID = errors.New("token does not carry a user id")

// TokenUser is the identity embedded in every session token.
type TokenUser struct {
	ID string `json:"id"`
}

// JWTClaims custom claims for JWT, serialised as {"user":{"id":"..."}}
type JWTClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey  string
	expiration time.Duration
}

// NewJWTUtil creates a new JWTUtil. A zero expiration issues tokens without
// an exp claim.
func NewJWTUtil(secretKey string, expiration time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, expiration: expiration}
}

// GenerateToken signs a session token for userID.
func (ju *JWTUtil) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ju.expiration != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ju.expiration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates the JWT token
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.User.ID == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}
