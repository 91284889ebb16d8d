package service

import (
	"context"
	"errors"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	listFn           func(context.Context) ([]*models.Post, error)
	deleteFn         func(context.Context, uint) error
	deleteByUserIDFn func(context.Context, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	getLikesFn       func(context.Context, uint) ([]models.Like, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) GetLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.getLikesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:           func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		deleteByUserIDFn: func(_ context.Context, _ uint) error { return nil },
		isLikedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:           func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:         func(_ context.Context, _, _ uint) error { return nil },
		getLikesFn:       func(_ context.Context, _ uint) ([]models.Like, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Jane Doe", Avatar: "https://example.com/a.png"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"whitespace only", "   \t "},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreatePost(ctx, 1, tt.text)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_SnapshotsAuthor(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	var created *models.Post
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		created = p
		return nil
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Name: "Ada Lovelace", Avatar: "https://example.com/ada.png"}, nil
	}

	svc := NewPostService(postRepo, userRepo)
	post, err := svc.CreatePost(context.Background(), 3, "first post")
	require.NoError(t, err)

	assert.Equal(t, uint(7), post.ID)
	assert.Equal(t, "Ada Lovelace", created.AuthorName)
	assert.Equal(t, "https://example.com/ada.png", created.AuthorAvatar)
	assert.NotNil(t, post.Likes)
	assert.Empty(t, post.Likes)
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-owner is rejected and post survives", func(t *testing.T) {
		t.Parallel()
		deleted := false
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 10}, nil
		}
		postRepo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		err := svc.DeletePost(context.Background(), 1, 5)
		assertUnauthorizedError(t, err)
		assert.False(t, deleted)
	})

	t.Run("missing post wins over ownership", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post not found")
		}
		svc := NewPostService(postRepo, noopUserRepo())
		err := svc.DeletePost(context.Background(), 1, 99)
		assertNotFoundError(t, err)
	})

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		require.NoError(t, svc.DeletePost(context.Background(), 1, 5))
	})
}

func TestPostService_LikePost(t *testing.T) {
	t.Parallel()

	t.Run("double like is rejected", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.LikePost(context.Background(), 1, 2)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post not found")
		}
		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.LikePost(context.Background(), 1, 99)
		assertNotFoundError(t, err)
	})

	t.Run("like returns the updated sequence", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		var liked bool
		postRepo.likeFn = func(_ context.Context, _, _ uint) error {
			liked = true
			return nil
		}
		postRepo.getLikesFn = func(_ context.Context, postID uint) ([]models.Like, error) {
			return []models.Like{{ID: 1, PostID: postID, UserID: 1}}, nil
		}
		svc := NewPostService(postRepo, noopUserRepo())
		likes, err := svc.LikePost(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Len(t, likes, 1)
	})
}

func TestPostService_UnlikePost(t *testing.T) {
	t.Parallel()

	t.Run("unlike without a like is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo())
		_, err := svc.UnlikePost(context.Background(), 1, 2)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotLiked, appErr.Code)
	})

	t.Run("like then unlike restores the sequence", func(t *testing.T) {
		t.Parallel()
		// Stateful stub: the like set drives IsLiked and GetLikes.
		likes := map[uint]bool{}
		postRepo := noopPostRepo()
		postRepo.isLikedFn = func(_ context.Context, userID, _ uint) (bool, error) {
			return likes[userID], nil
		}
		postRepo.likeFn = func(_ context.Context, userID, _ uint) error {
			likes[userID] = true
			return nil
		}
		postRepo.unlikeFn = func(_ context.Context, userID, _ uint) error {
			delete(likes, userID)
			return nil
		}
		postRepo.getLikesFn = func(_ context.Context, postID uint) ([]models.Like, error) {
			var out []models.Like
			for userID := range likes {
				out = append(out, models.Like{PostID: postID, UserID: userID})
			}
			return out, nil
		}

		svc := NewPostService(postRepo, noopUserRepo())
		ctx := context.Background()

		afterLike, err := svc.LikePost(ctx, 1, 2)
		require.NoError(t, err)
		assert.Len(t, afterLike, 1)

		afterUnlike, err := svc.UnlikePost(ctx, 1, 2)
		require.NoError(t, err)
		assert.Empty(t, afterUnlike)
	})
}
