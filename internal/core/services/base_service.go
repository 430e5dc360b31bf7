package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	CraftsmanAuthorizer portssvc.CraftsmanAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeCraftsman checks if a user may act for a craftsman.
// Without an authorizer every request is denied.
func (s *BaseService) AuthorizeCraftsman(ctx context.Context, userID, craftsmanID string) error {
	if s.CraftsmanAuthorizer == nil {
		s.LogWarn(ctx, "No craftsman authorizer configured, access denied",
			slog.String("user_id", userID),
			slog.String("craftsman_id", craftsmanID))
		return apperrors.ErrForbidden
	}
	return s.CraftsmanAuthorizer.AuthorizeCraftsmanAccess(ctx, userID, craftsmanID)
}

// ResolveCraftsman returns the craftsman a request acts for.
func (s *BaseService) ResolveCraftsman(ctx context.Context, userID, requestedCraftsmanID string) (string, error) {
	if s.CraftsmanAuthorizer == nil {
		return "", apperrors.ErrForbidden
	}
	return s.CraftsmanAuthorizer.ResolveCraftsmanScope(ctx, userID, requestedCraftsmanID)
}

// authorizeOwnership hides records of other craftsmen: a forbidden access is reported as not found.
func (s *BaseService) authorizeOwnership(ctx context.Context, userID, craftsmanID, entity string) error {
	err := s.AuthorizeCraftsman(ctx, userID, craftsmanID)
	if errors.Is(err, apperrors.ErrForbidden) {
		s.LogWarn(ctx, "Access to foreign record hidden as not found",
			slog.String("entity", entity),
			slog.String("user_id", userID),
			slog.String("craftsman_id", craftsmanID))
		return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", entity))
	}
	return err
}
