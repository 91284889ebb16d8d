// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetOwnProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req struct {
		Status         string            `json:"status"`
		Skills         service.SkillList `json:"skills"`
		Company        *string           `json:"company"`
		Website        *string           `json:"website"`
		Location       *string           `json:"location"`
		Bio            *string           `json:"bio"`
		GithubUsername *string           `json:"github_username"`
		Social         map[string]string `json:"social"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.Context(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.Social,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetProfiles handles GET /api/profile
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:id
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id", "No profile exists for this user")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetByUserID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.accountService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		FromDate    string `json:"from_date"`
		ToDate      string `json:"to_date"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.Context(), service.AddExperienceInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:id
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	entryID, err := s.parseID(c, "id", "No profile exists for this user")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveExperience(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"field_of_study"`
		FromDate     string `json:"from_date"`
		ToDate       string `json:"to_date"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.Context(), service.AddEducationInput{
		UserID:       currentUserID(c),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		Description:  req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:id
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	entryID, err := s.parseID(c, "id", "No profile exists for this user")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveEducation(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:userName
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("userName")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("No Github profile found"))
	}

	repos, err := s.githubClient.ListRepos(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(repos)
}
