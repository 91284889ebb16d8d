package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// SkillList decodes either a JSON array of strings or a single
// comma-delimited string, so both payload shapes land in the same type.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return err
	}
	*s = strings.Split(csv, ",")
	return nil
}

// NormalizeSkills trims every entry and drops the empty ones.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type UpsertProfileInput struct {
	UserID         uint
	Status         string
	Skills         []string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string
	Social         map[string]string
}

type AddExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	FromDate    string
	ToDate      string
	Current     bool
	Description string
}

type AddEducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	FromDate     string
	ToDate       string
	Description  string
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// Upsert creates the caller's profile or updates it in place. Status and
// skills are required on every call; optional fields only overwrite when
// supplied, so repeated submissions merge rather than blank out.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	var missing []string
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "status")
	}
	skills := NormalizeSkills(in.Skills)
	if len(skills) == 0 {
		missing = append(missing, "skills")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Status and skills are required", missing...)
	}
	in.Skills = skills

	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		return s.applyUpdate(ctx, existing, in)
	case models.IsCode(err, models.CodeNotFound):
		profile := &models.Profile{UserID: in.UserID}
		applyProfileFields(profile, in)
		if createErr := s.profileRepo.Create(ctx, profile); createErr != nil {
			if errors.Is(createErr, repository.ErrProfileExists) {
				// Lost a create race against a concurrent upsert for
				// the same user. Re-read and apply as an update.
				raced, readErr := s.profileRepo.GetByUserID(ctx, in.UserID)
				if readErr != nil {
					return nil, readErr
				}
				return s.applyUpdate(ctx, raced, in)
			}
			return nil, createErr
		}
		return s.profileRepo.GetByUserID(ctx, in.UserID)
	default:
		return nil, err
	}
}

func (s *ProfileService) applyUpdate(ctx context.Context, profile *models.Profile, in UpsertProfileInput) (*models.Profile, error) {
	applyProfileFields(profile, in)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func applyProfileFields(profile *models.Profile, in UpsertProfileInput) {
	profile.Status = strings.TrimSpace(in.Status)
	profile.Skills = in.Skills
	if in.Company != nil {
		profile.Company = *in.Company
	}
	if in.Website != nil {
		profile.Website = *in.Website
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.GithubUsername != nil {
		profile.GithubUsername = *in.GithubUsername
	}
	if in.Social != nil {
		profile.Social = in.Social
	}
}

func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(in.FromDate) == "" {
		missing = append(missing, "from_date")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Title, company and from date are required", missing...)
	}

	from, err := parseDate(in.FromDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid from date", "from_date")
	}
	var to *time.Time
	if strings.TrimSpace(in.ToDate) != "" {
		parsed, err := parseDate(in.ToDate)
		if err != nil {
			return nil, models.NewValidationError("Invalid to date", "to_date")
		}
		to = &parsed
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    in.Location,
		FromDate:    from,
		ToDate:      to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile.ID, entry); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveExperience deletes the entry when it belongs to the caller's
// profile. An id that matches nothing is not an error; the profile is
// returned unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	var missing []string
	if strings.TrimSpace(in.School) == "" {
		missing = append(missing, "school")
	}
	if strings.TrimSpace(in.Degree) == "" {
		missing = append(missing, "degree")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		missing = append(missing, "field_of_study")
	}
	if strings.TrimSpace(in.FromDate) == "" {
		missing = append(missing, "from_date")
	}
	if strings.TrimSpace(in.ToDate) == "" {
		missing = append(missing, "to_date")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("School, degree, field of study and dates are required", missing...)
	}

	from, err := parseDate(in.FromDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid from date", "from_date")
	}
	to, err := parseDate(in.ToDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid to date", "to_date")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		FromDate:     from,
		ToDate:       to,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile.ID, entry); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// parseDate accepts the date-only form clients send plus full RFC 3339
// timestamps.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
