package services

import (
	"context"

	"placementhub/internal/cache"
	"placementhub/internal/models"
	"placementhub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type adminService struct {
	users    repositories.UserRepository
	cache    cache.Cache
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(
	users repositories.UserRepository,
	c cache.Cache,
	validate *validator.Validate,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		users:    users,
		cache:    c,
		validate: validate,
		logger:   logger,
	}
}

// ListUsers returns every account with its role profile joined.
func (s *adminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListWithProfiles(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list users")
	}
	return users, nil
}

// UpdateUserStatus sets an account's status. Activating a company makes
// its jobs visible again; blocking hides them.
func (s *adminService) UpdateUserStatus(ctx context.Context, id int64, req UpdateUserStatusRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid status request", err)
	}

	user, err := s.users.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, NewInternalError("failed to update user status")
	}
	if user == nil {
		return nil, NewNotFoundError("User not found")
	}

	s.invalidateListings(ctx)

	s.logger.Info("User status changed",
		zap.Int64("user_id", user.ID),
		zap.String("status", user.Status),
	)
	return user, nil
}

// DeleteUser removes the account and everything it owns. Admins cannot
// delete their own account.
func (s *adminService) DeleteUser(ctx context.Context, caller Caller, id int64) error {
	if caller.UserID == id {
		return NewValidationError("You cannot delete your own account", nil)
	}

	if err := s.users.DeleteCascade(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return NewNotFoundError("User not found")
		}
		return NewInternalError("failed to delete user")
	}

	s.invalidateListings(ctx)

	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

func (s *adminService) invalidateListings(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyVisibleJobs); err != nil {
		s.logger.Warn("Failed to invalidate job listing cache", zap.Error(err))
	}
	if err := s.cache.DeletePattern(ctx, cacheKeyStatsPrefix+"*"); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
