package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for the analytics admin
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// SessionClaims are JWT claims scoped to one diagnostic session
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	Tool      ToolID `json:"tool"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}
