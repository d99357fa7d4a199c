package services

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/passwords"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
)

// Token types carried in the "type" claim.
const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

const invalidCredentials = "No active account found with the given credentials"

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles business logic for authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, logger logrus.FieldLogger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Login authenticates an active user and returns an access/refresh pair.
// A successful login updates LastLogin, which also invalidates any
// outstanding password reset token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetActiveByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, err
	}
	if !passwords.Check(user.Password, password) {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user, s.now().UTC()); err != nil {
		return nil, err
	}

	access, err := s.sign(user.ID, AccessToken, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user.ID, RefreshToken, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.ValidateToken(refreshToken, RefreshToken)
	if err != nil {
		return "", err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return "", apperrors.NewUnauthorized("Token is invalid or expired")
	}
	return s.sign(user.ID, AccessToken, s.accessTTL)
}

// Verify reports whether token is a valid token of either type.
func (s *AuthService) Verify(token string) error {
	_, err := s.ValidateToken(token, "")
	return err
}

func (s *AuthService) sign(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses a token and returns the user id it was issued to.
// An empty tokenType accepts both access and refresh tokens.
func (s *AuthService) ValidateToken(tokenString, tokenType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.logger.WithField("error", err.Error()).Debug("token validation failed")
		return 0, apperrors.NewUnauthorized("Token is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, apperrors.NewUnauthorized("Token is invalid or expired")
	}
	if typ, _ := claims["type"].(string); tokenType != "" && typ != tokenType {
		return 0, apperrors.NewUnauthorized("Token has wrong type")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, apperrors.NewUnauthorized("Token contained no recognizable user identification")
	}
	return uint(id), nil
}
