// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
// The password hash never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the session token and user after login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SessionResponse represents the current session.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToSessionResponse converts a SessionContext to SessionResponse DTO.
func ToSessionResponse(session *model.SessionContext) SessionResponse {
	return SessionResponse{
		UserID:    session.UserID,
		FirstName: session.FirstName,
		LastName:  session.LastName,
		Email:     session.Email,
		IssuedAt:  session.IssuedAt,
	}
}
