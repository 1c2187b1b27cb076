package handler

import (
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/identity"
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,notblank,min=3,max=100" example:"landlord"`
	Email       string `json:"email" binding:"required,email,max=200" example:"owner@example.com"`
	Password    string `json:"password" binding:"required,min=8,max=72" example:"s3cretpass"`
	DisplayName string `json:"display_name" binding:"max=200" example:"Jane Owner"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank,min=3,max=100" example:"landlord"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"s3cretpass"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke with the session
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username" example:"landlord"`
	DisplayName string     `json:"display_name" example:"Jane Owner"`
	Email       string     `json:"email" example:"owner@example.com"`
	Status      string     `json:"status" example:"active" enums:"active,locked,deactivated"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse represents the response body for register and login
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// RefreshTokenResponse represents the response body for token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// MessageData is a confirmation message
type MessageData struct {
	Message string `json:"message" example:"Logged out successfully"`
}

func toAuthUserResponse(u identity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func toLoginResponse(r *identity.AuthResult) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken:           r.AccessToken,
			RefreshToken:          r.RefreshToken,
			AccessTokenExpiresAt:  r.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: r.RefreshTokenExpiresAt,
			TokenType:             r.TokenType,
		},
		User: toAuthUserResponse(r.User),
	}
}
