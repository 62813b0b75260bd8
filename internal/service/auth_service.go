package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nnx1/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const adminTokenTTL = 12 * time.Hour

// AuthService issues and validates admin and session tokens
type AuthService struct {
	adminUsername string
	adminPassword string
	jwtSecret     []byte
	sessionTTL    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(username, password, secret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		adminUsername: username,
		adminPassword: password,
		jwtSecret:     []byte(secret),
		sessionTTL:    sessionTTL,
	}
}

// Login validates admin credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	adminID := "admin_" + uuid.New().String()[:8]
	now := time.Now()
	claims := &model.AdminClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		AdminID: adminID,
	}, nil
}

// ValidateAdminToken validates an admin JWT and returns claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	claims := &model.AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.AdminID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateSessionToken creates a token scoped to one diagnostic session
func (s *AuthService) GenerateSessionToken(sessionID string, tool model.ToolID) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		SessionID: sessionID,
		Tool:      tool,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateSessionToken validates a session JWT and returns claims
func (s *AuthService) ValidateSessionToken(tokenString string) (*model.SessionClaims, error) {
	claims := &model.SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
