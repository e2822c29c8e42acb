package services

import (
	"context"
	"log/slog"

	"github.com/spendlens/spendlens_backend/internal/middleware"
)

// BaseService provides common functionality shared across services.
type BaseService struct{}

// GetLogger extracts the request-scoped logger from context.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with the request-scoped logger.
func (s *BaseService) LogError(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an informational message with the request-scoped logger.
func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Info(msg, args...)
}

// LogWarn logs a warning with the request-scoped logger.
func (s *BaseService) LogWarn(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Warn(msg, args...)
}
