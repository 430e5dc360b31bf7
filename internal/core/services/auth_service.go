package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/platform/config"
	"github.com/SscSPs/zimmr_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserReader
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User, craftsmanID string) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, craftsmanID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new refresh token for the given user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	// 32 bytes -> 64 character hex string
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}
	return rawRefreshToken, time.Now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateAndParseRefreshToken compares the hashed refresh token with the stored hash and expiry.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == nil || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, *user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	userRepo      portsrepo.UserRepositoryWithTx
	craftsmanRepo portsrepo.CraftsmanRepositoryFacade
	tokens        portssvc.TokenSvcFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryWithTx, craftsmanRepo portsrepo.CraftsmanRepositoryFacade, tokens portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:      userRepo,
		craftsmanRepo: craftsmanRepo,
		tokens:        tokens,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates the user and its craftsman profile in one transaction.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Craftsman, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || req.Password == "" {
		return nil, nil, apperrors.NewValidationFailedError("email, password and name are required")
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewDuplicateError("a user with this email already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleCraftsman,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	craftsman := domain.Craftsman{
		CraftsmanID:    uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		Specialty:      strings.TrimSpace(req.Specialty),
		DefaultTaxRate: decimal.Zero,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	tx, err := s.userRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer s.userRepo.Rollback(ctx, tx)

	if err := s.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, nil, err
	}
	if err := s.craftsmanRepo.SaveCraftsmanInTx(ctx, tx, craftsman); err != nil {
		s.LogError(ctx, err, "Failed to save craftsman profile", slog.String("user_id", userID))
		return nil, nil, err
	}
	if err := s.userRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", userID),
		slog.String("craftsman_id", craftsman.CraftsmanID))
	return &user, &craftsman, nil
}

// Login verifies the credentials and opens a new session.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthSession, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown email")
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if user.DeletedAt != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login failed", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return session, nil
}

// Refresh validates the refresh token, rotates it and issues a new access token.
func (s *authService) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.AuthSession, error) {
	user, err := s.tokens.ValidateAndParseRefreshToken(ctx, req.UserID, req.RefreshToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) && !errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			s.LogError(ctx, err, "Failed to validate refresh token", slog.String("user_id", req.UserID))
		}
		return nil, err
	}
	return s.openSession(ctx, user)
}

// Logout clears the stored refresh token.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

// Me returns the user and its craftsman profile. The profile is nil for users without one.
func (s *authService) Me(ctx context.Context, userID string) (*domain.User, *domain.Craftsman, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	craftsman, err := s.craftsmanRepo.FindCraftsmanByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, craftsman, nil
}

func (s *authService) openSession(ctx context.Context, user *domain.User) (*dto.AuthSession, error) {
	craftsmanID := ""
	craftsman, err := s.craftsmanRepo.FindCraftsmanByUserID(ctx, user.UserID)
	switch {
	case err == nil:
		craftsmanID = craftsman.CraftsmanID
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(ctx, user, craftsmanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, err
	}
	refreshToken, refreshExpiry, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return nil, err
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, err
	}

	return &dto.AuthSession{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
