package services

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// TokenSvcFacade defines operations for token generation and validation.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user's role and craftsman id.
	GenerateAccessToken(ctx context.Context, user *domain.User, craftsmanID string) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a refresh token against the stored hash and returns its user.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// AuthSvcFacade defines account registration and session operations.
type AuthSvcFacade interface {
	// Register creates a craftsman user and its profile in one transaction.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Craftsman, error)

	// Login verifies credentials and opens a session.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthSession, error)

	// Refresh rotates the refresh token and issues a new access token.
	Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.AuthSession, error)

	// Logout clears the stored refresh token.
	Logout(ctx context.Context, userID string) error

	// Me returns the user and, if present, its craftsman profile.
	Me(ctx context.Context, userID string) (*domain.User, *domain.Craftsman, error)
}
