// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/projectdesk/projectdesk/internal/model"

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse represents a newly created account.
// The password hash never leaves the server.
type RegisterResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the generic JSON envelope for confirmations and errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToRegisterResponse converts a User model to RegisterResponse DTO.
func ToRegisterResponse(user *model.User) *RegisterResponse {
	return &RegisterResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
