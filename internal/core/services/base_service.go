package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/platform/clock"
	"github.com/SscSPs/property_ledger/internal/platform/lock"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock  clock.Clock
	Locker lock.Locker
}

// ServiceOption is a functional option for configuring the shared service dependencies
type ServiceOption func(*BaseService)

// WithClock sets the clock used for "now" and "today".
func WithClock(c clock.Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = c
	}
}

// WithLocker sets the advisory locker used to serialise mutations on one record.
func WithLocker(l lock.Locker) ServiceOption {
	return func(s *BaseService) {
		s.Locker = l
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	if base.Clock == nil {
		base.Clock = clock.NewSystemClock(time.UTC)
	}
	if base.Locker == nil {
		base.Locker = lock.NewLocalLocker()
	}
	return base
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

// LogWarn logs an expected business rejection (validation, precondition failure).
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// acquire takes the advisory lock for key. A held lock surfaces as ErrConcurrentModification so
// the caller can retry.
func (s *BaseService) acquire(ctx context.Context, key string) (lock.ReleaseFunc, error) {
	release, err := s.Locker.Acquire(ctx, key)
	if errors.Is(err, lock.ErrLockHeld) {
		return nil, fmt.Errorf("%w: %s is being modified by another request", apperrors.ErrConcurrentModification, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return release, nil
}

// newAudit snapshots before/after into an audit entry stamped with the service clock.
func (s *BaseService) newAudit(actor string, action domain.AuditAction, entityType, entityID string, before, after any) (domain.AuditEntry, error) {
	return domain.NewAuditEntry(uuid.NewString(), actor, action, entityType, entityID, before, after, s.Clock.Now())
}

// isBusinessError reports whether err is one of the expected ledger rejections rather than an
// infrastructure failure; those are logged at warn level.
func isBusinessError(err error) bool {
	for _, kind := range []error{
		apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrInvalidAmount, apperrors.ErrInvalidType,
		apperrors.ErrInvalidStatus, apperrors.ErrInvalidStatusTransition, apperrors.ErrAlreadyApplied,
		apperrors.ErrGracePeriodNotElapsed, apperrors.ErrFeatureDisabled, apperrors.ErrZeroFee,
		apperrors.ErrConcurrentModification,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// logFailure picks the level for err and logs it.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isBusinessError(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
