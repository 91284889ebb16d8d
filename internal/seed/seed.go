// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with demo users, profiles, posts, likes and
// comments. With ShouldClean set, existing rows are removed first.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 30
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if _, err := factory.CreateProfile(user); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users with profiles", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rand.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("seeded %d posts", len(posts))

	var likes, comments int
	for _, post := range posts {
		for _, user := range users {
			if factory.rand.Intn(4) == 0 {
				if err := factory.CreateLike(user, post); err != nil {
					return fmt.Errorf("create like: %w", err)
				}
				likes++
			}
			if factory.rand.Intn(6) == 0 {
				if _, err := factory.CreateComment(user, post); err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
				comments++
			}
		}
	}
	log.Printf("seeded %d likes, %d comments", likes, comments)

	return nil
}

// Clean removes all seeded rows, children first.
func Clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Education{}, &models.Experience{}, &models.Profile{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
