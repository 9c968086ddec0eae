package dto

import (
	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
)

// RegistrationRequest represents the request to create an account
type RegistrationRequest struct {
	FullName         string `json:"fullname" binding:"required,min=2,max=255"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=128"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned from registration and login
type AuthResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"fullname"`
	Email    string    `json:"email"`
}

// EmailCheckResponse reports whether an email is already registered
type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}

// MiniUser is the compact user representation embedded in board and
// task responses
type MiniUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullname"`
}

// ToMiniUser converts a user to its compact representation
func ToMiniUser(user *domain.User) MiniUser {
	return MiniUser{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

// ToMiniUserPtr converts an optional user, preserving null
func ToMiniUserPtr(user *domain.User) *MiniUser {
	if user == nil {
		return nil
	}
	mini := ToMiniUser(user)
	return &mini
}
