package model

import "time"

// User represents an account holder.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the body accepted by the register endpoint.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,bcryptmax"`
	MobileNumber string `json:"mobile_number" binding:"required,min=10"`
}

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required,min=10"`
	Password     string `json:"password"` // empty falls through to Invalid Credentials
}

// ProfileUpdate is the allow-list of client-modifiable fields. Nil fields are
// left untouched; keys outside this struct never reach the store.
type ProfileUpdate struct {
	Name         *string `json:"name" binding:"omitempty,min=1"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     *string `json:"password" binding:"omitempty,min=8,bcryptmax"`
	MobileNumber *string `json:"mobile_number" binding:"omitempty,min=10"`
}

// IsEmpty reports whether no allow-listed field was supplied.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.MobileNumber == nil
}

// UserChanges is a ProfileUpdate after the password has been hashed; it is
// what the repository persists.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	MobileNumber *string
}
