package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated student identity.
type JWTClaims struct {
	StudentID int64 `json:"student_id"`
	ClassID   int64 `json:"class_id"`
	jwt.RegisteredClaims
}

// LoginRequest is the student login payload.
type LoginRequest struct {
	MailAddress string `json:"mail_address" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token and the student profile.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	Student     Student `json:"student"`
}
