package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// ErrProfileExists signals a unique-constraint violation on profiles.user_id:
// another request created the caller's profile concurrently. Services treat
// it as "retry as update".
var ErrProfileExists = errors.New("profile already exists for user")

// ProfileRepository defines persistence operations for profiles and their
// embedded experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, profileID uint, entry *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, entryID uint) error
	AddEducation(ctx context.Context, profileID uint, entry *models.Education) error
	RemoveEducation(ctx context.Context, profileID, entryID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withJoins preloads the owning user plus experience and education in
// prepend order (newest entry first).
func (r *profileRepository) withJoins(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		err := r.withJoins(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("No profile exists for this user")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		if err := r.withJoins(r.db.WithContext(ctx)).Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if IsUniqueConstraintError(err) {
			return ErrProfileExists
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Omit("Experience", "Education", "User").Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A user without a profile is fine; nothing to remove.
				return nil
			}
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, profileID uint, entry *models.Experience) error {
	entry.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

// RemoveExperience filters the entry out of the profile's sequence.
// Removing an id that is not present (or belongs to someone else's
// profile) is a no-op, not an error.
func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, entryID uint) error {
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, entryID).
		Delete(&models.Experience{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profileID uint, entry *models.Education) error {
	entry.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, entryID uint) error {
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, entryID).
		Delete(&models.Education{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) invalidateByProfileID(ctx context.Context, profileID uint) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Select("user_id").First(&profile, profileID).Error; err == nil {
		cache.InvalidateProfile(ctx, profile.UserID)
	}
}
