package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"devlink/internal/models"
	"devlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	listFn             func(context.Context) ([]*models.Profile, error)
	createFn           func(context.Context, *models.Profile) error
	saveFn             func(context.Context, *models.Profile) error
	deleteByUserIDFn   func(context.Context, uint) error
	addExperienceFn    func(context.Context, uint, *models.Experience) error
	removeExperienceFn func(context.Context, uint, uint) error
	addEducationFn     func(context.Context, uint, *models.Education) error
	removeEducationFn  func(context.Context, uint, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context) ([]*models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Save(ctx context.Context, profile *models.Profile) error {
	return s.saveFn(ctx, profile)
}
func (s *profileRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, profileID uint, entry *models.Experience) error {
	return s.addExperienceFn(ctx, profileID, entry)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, profileID, entryID uint) error {
	return s.removeExperienceFn(ctx, profileID, entryID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, profileID uint, entry *models.Education) error {
	return s.addEducationFn(ctx, profileID, entry)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, profileID, entryID uint) error {
	return s.removeEducationFn(ctx, profileID, entryID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: 1, UserID: userID, Status: "Developer", Skills: []string{"Go"}}, nil
		},
		listFn:             func(_ context.Context) ([]*models.Profile, error) { return nil, nil },
		createFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		saveFn:             func(_ context.Context, _ *models.Profile) error { return nil },
		deleteByUserIDFn:   func(_ context.Context, _ uint) error { return nil },
		addExperienceFn:    func(_ context.Context, _ uint, _ *models.Experience) error { return nil },
		removeExperienceFn: func(_ context.Context, _, _ uint) error { return nil },
		addEducationFn:     func(_ context.Context, _ uint, _ *models.Education) error { return nil },
		removeEducationFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestSkillList_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"array form", `["Go","Rust"]`, []string{"Go", "Rust"}},
		{"comma-delimited string", `"HTML, CSS,JavaScript"`, []string{"HTML", " CSS", "JavaScript"}},
		{"single value string", `"Go"`, []string{"Go"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var skills SkillList
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &skills))
			assert.Equal(t, tt.want, []string(skills))
		})
	}
}

func TestNormalizeSkills(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"HTML", "CSS", "JavaScript"},
		NormalizeSkills([]string{" HTML", "CSS ", "", "  ", "JavaScript"}))
	assert.Empty(t, NormalizeSkills([]string{"", "   "}))
}

func TestProfileService_Upsert_Validation(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(noopProfileRepo())
	ctx := context.Background()

	t.Run("missing both lists both fields", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upsert(ctx, UpsertProfileInput{UserID: 1})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, []string{"status", "skills"}, appErr.Fields)
	})

	t.Run("blank skills count as missing", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upsert(ctx, UpsertProfileInput{
			UserID: 1,
			Status: "Developer",
			Skills: []string{"  ", ""},
		})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, []string{"skills"}, appErr.Fields)
	})
}

func TestProfileService_Upsert_CreatesWhenAbsent(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	var stored *models.Profile
	calls := 0
	repo.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		calls++
		if stored == nil {
			return nil, models.NewNotFoundError("No profile exists for this user")
		}
		return stored, nil
	}
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		p.ID = 1
		stored = p
		return nil
	}

	svc := NewProfileService(repo)
	profile, err := svc.Upsert(context.Background(), UpsertProfileInput{
		UserID: 3,
		Status: "Developer",
		Skills: []string{" Go ", "Redis", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Redis"}, profile.Skills)
	assert.Equal(t, "Developer", profile.Status)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestProfileService_Upsert_PartialMerge(t *testing.T) {
	t.Parallel()

	stored := &models.Profile{
		ID:      1,
		UserID:  3,
		Status:  "Developer",
		Skills:  []string{"Go"},
		Company: "Initech",
		Bio:     "old bio",
	}
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) { return stored, nil }
	repo.saveFn = func(_ context.Context, p *models.Profile) error {
		stored = p
		return nil
	}

	bio := "new bio"
	svc := NewProfileService(repo)
	profile, err := svc.Upsert(context.Background(), UpsertProfileInput{
		UserID: 3,
		Status: "Senior Developer",
		Skills: []string{"Go", "Postgres"},
		Bio:    &bio,
	})
	require.NoError(t, err)

	// Supplied fields overwrite; omitted optional fields survive.
	assert.Equal(t, "Senior Developer", profile.Status)
	assert.Equal(t, "new bio", profile.Bio)
	assert.Equal(t, "Initech", profile.Company)
}

func TestProfileService_Upsert_Idempotent(t *testing.T) {
	t.Parallel()

	var stored *models.Profile
	saves := 0
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		if stored == nil {
			return nil, models.NewNotFoundError("No profile exists for this user")
		}
		return stored, nil
	}
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		p.ID = 1
		stored = p
		return nil
	}
	repo.saveFn = func(_ context.Context, p *models.Profile) error {
		saves++
		stored = p
		return nil
	}

	svc := NewProfileService(repo)
	in := UpsertProfileInput{UserID: 3, Status: "Developer", Skills: []string{"Go"}}

	first, err := svc.Upsert(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.Upsert(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, 1, saves)
}

func TestProfileService_Upsert_RetriesOnCreateRace(t *testing.T) {
	t.Parallel()

	// First read misses, create hits the unique index, second read finds
	// the row the concurrent request inserted.
	reads := 0
	saved := false
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		reads++
		if reads == 1 {
			return nil, models.NewNotFoundError("No profile exists for this user")
		}
		return &models.Profile{ID: 1, UserID: userID, Status: "Student", Skills: []string{"Go"}}, nil
	}
	repo.createFn = func(_ context.Context, _ *models.Profile) error {
		return repository.ErrProfileExists
	}
	repo.saveFn = func(_ context.Context, _ *models.Profile) error {
		saved = true
		return nil
	}

	svc := NewProfileService(repo)
	profile, err := svc.Upsert(context.Background(), UpsertProfileInput{
		UserID: 3,
		Status: "Developer",
		Skills: []string{"Go"},
	})
	require.NoError(t, err)
	assert.True(t, saved)
	assert.NotNil(t, profile)
}

func TestProfileService_AddExperience(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(noopProfileRepo())
	ctx := context.Background()

	t.Run("missing required fields are listed", func(t *testing.T) {
		t.Parallel()
		_, err := svc.AddExperience(ctx, AddExperienceInput{UserID: 1})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, []string{"title", "company", "from_date"}, appErr.Fields)
	})

	t.Run("unparseable date is invalid", func(t *testing.T) {
		t.Parallel()
		_, err := svc.AddExperience(ctx, AddExperienceInput{
			UserID:   1,
			Title:    "Engineer",
			Company:  "Initech",
			FromDate: "not-a-date",
		})
		assertValidationError(t, err)
	})

	t.Run("entry is stamped onto the profile", func(t *testing.T) {
		t.Parallel()
		repo := noopProfileRepo()
		var added *models.Experience
		repo.addExperienceFn = func(_ context.Context, profileID uint, entry *models.Experience) error {
			added = entry
			return nil
		}
		svc2 := NewProfileService(repo)
		_, err := svc2.AddExperience(ctx, AddExperienceInput{
			UserID:   1,
			Title:    "Engineer",
			Company:  "Initech",
			FromDate: "2019-04-01",
			ToDate:   "2021-06-30",
		})
		require.NoError(t, err)
		require.NotNil(t, added)
		assert.Equal(t, uint(1), added.ProfileID)
		assert.Equal(t, 2019, added.FromDate.Year())
		require.NotNil(t, added.ToDate)
		assert.Equal(t, 2021, added.ToDate.Year())
	})

	t.Run("no profile is not found", func(t *testing.T) {
		t.Parallel()
		repo := noopProfileRepo()
		repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
			return nil, models.NewNotFoundError("No profile exists for this user")
		}
		svc2 := NewProfileService(repo)
		_, err := svc2.AddExperience(ctx, AddExperienceInput{
			UserID:   1,
			Title:    "Engineer",
			Company:  "Initech",
			FromDate: "2019-04-01",
		})
		assertNotFoundError(t, err)
	})
}

func TestProfileService_RemoveExperience_AbsentIDIsNoop(t *testing.T) {
	t.Parallel()

	// The repository's delete matches nothing for an unknown id; the
	// service still returns the profile as a success.
	repo := noopProfileRepo()
	svc := NewProfileService(repo)
	profile, err := svc.RemoveExperience(context.Background(), 1, 9999)
	require.NoError(t, err)
	assert.NotNil(t, profile)
}

func TestProfileService_AddEducation_Validation(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(noopProfileRepo())
	_, err := svc.AddEducation(context.Background(), AddEducationInput{UserID: 1, School: "MIT"})
	assertValidationError(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"degree", "field_of_study", "from_date", "to_date"}, appErr.Fields)
}
