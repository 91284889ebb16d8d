package service

import (
	"context"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// AddComment appends a comment stamped with the commenter's current name
// and avatar, then returns the post's comment sequence newest first.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required", "text")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:       postID,
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// RemoveComment deletes the comment when the caller wrote it. The post
// author has no special standing here; only the comment's own author may
// remove it.
func (s *CommentService) RemoveComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByPostAndID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("User not authorized")
	}
	if err := s.commentRepo.Delete(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
