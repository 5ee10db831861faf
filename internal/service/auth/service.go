package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/factorydesk/workforce-backend-go/internal/domain/auth"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/jwt"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db         *database.DB
	userRepo   auth.UserRepository
	jwtService jwt.Service
}

func NewAuthService(db *database.DB, userRepo auth.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:         db,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// same error for unknown user and bad password
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(user.ID, user.FactoryID, user.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
		Role:             string(user.Role),
	}, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if refreshToken == "" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := jwtauthDecode(s, refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(user.ID, user.FactoryID, user.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken:     accessToken,
		AccessExpiresAt: accessExp,
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}

	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func jwtauthDecode(s *AuthServiceImpl, tokenString string) (jwxjwt.Token, error) {
	token, err := s.jwtService.JWTAuth().Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if err := jwxjwt.Validate(token); err != nil {
		return nil, err
	}
	return token, nil
}
