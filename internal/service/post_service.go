package service

import (
	"context"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePost stores a new post stamped with the author's current name and
// avatar. The snapshot is never re-synced if the user record changes later.
func (s *PostService) CreatePost(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required", "text")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Likes:        []models.Like{},
		Comments:     []models.Comment{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes the post and everything embedded in it. Only the
// author may delete; a missing post reports NotFound before any ownership
// check runs.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records the caller's like and returns the post's like sequence,
// newest first. Liking twice is rejected.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewAlreadyLikedError()
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetLikes(ctx, postID)
}

// UnlikePost removes the caller's like. Unliking a post the caller never
// liked is rejected rather than treated as a no-op.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return nil, models.NewNotLikedError()
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetLikes(ctx, postID)
}
