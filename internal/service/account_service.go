package service

import (
	"context"

	"devlink/internal/middleware"
	"devlink/internal/repository"
)

type AccountService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
}

func NewAccountService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
	}
}

// DeleteAccount removes the user's posts, profile and user record in that
// order. The steps are sequential with no compensation: a failure part way
// through leaves the earlier deletions in place and surfaces the error.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.postRepo.DeleteByUserID(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account delete: posts step failed", "error", err, "user_id", userID)
		return err
	}
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account delete: profile step failed", "error", err, "user_id", userID)
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		middleware.Logger.ErrorContext(ctx, "account delete: user step failed", "error", err, "user_id", userID)
		return err
	}
	return nil
}
