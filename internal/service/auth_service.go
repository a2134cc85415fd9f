package service

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token inválido o expirado")

// AuthService signs and validates session tokens carrying the user role
type AuthService struct {
	userRepo   repository.UserRepo
	jwtSecret  []byte
	expiration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepo, secret string, expiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(secret),
		expiration: expiration,
	}
}

// IssueToken signs a session token for user
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		UserID:   user.ID,
		IDPortal: user.IDPortal,
		Rol:      user.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// IssueForPortalID looks the user up and signs a token with their stored role
func (s *AuthService) IssueForPortalID(ctx context.Context, idPortal string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByIDPortal(ctx, idPortal)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrNotFound
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		Token:    token,
		UserID:   user.ID,
		IDPortal: user.IDPortal,
		Rol:      user.Rol,
	}, nil
}

// ValidateToken parses a session token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
