package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor used for every stored password.
const PasswordHashCost = 10

// MaxPasswordBytes is bcrypt's input limit; longer passwords are rejected.
const MaxPasswordBytes = 72

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
