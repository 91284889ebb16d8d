// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var statuses = []string{
	"Developer", "Senior Developer", "Junior Developer", "Student",
	"Instructor", "Manager", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "HTML", "CSS",
	"React", "Vue", "PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS",
	"GraphQL", "gRPC", "Kafka", "Terraform",
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/200?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a profile for the user with a realistic skill set
// and a couple of career entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skills := f.pickSkills(2 + f.rand.Intn(5))
	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		Status:         statuses[f.rand.Intn(len(statuses))],
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Skills:         skills,
		Social: map[string]string{
			"twitter":  fmt.Sprintf("https://twitter.com/%s", gofakeit.Username()),
			"linkedin": fmt.Sprintf("https://linkedin.com/in/%s", gofakeit.Username()),
		},
	}
	for _, override := range overrides {
		override(profile)
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	for i := 0; i < 1+f.rand.Intn(3); i++ {
		if _, err := f.CreateExperience(profile); err != nil {
			return nil, err
		}
	}
	if _, err := f.CreateEducation(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateExperience persists a career entry for the profile.
func (f *Factory) CreateExperience(profile *models.Profile) (*models.Experience, error) {
	from := time.Now().AddDate(-1-f.rand.Intn(8), -f.rand.Intn(12), 0)
	entry := &models.Experience{
		ProfileID:   profile.ID,
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		FromDate:    from,
		Current:     f.rand.Intn(3) == 0,
		Description: gofakeit.Sentence(15),
	}
	if !entry.Current {
		to := from.AddDate(1+f.rand.Intn(3), 0, 0)
		entry.ToDate = &to
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateEducation persists a schooling entry for the profile.
func (f *Factory) CreateEducation(profile *models.Profile) (*models.Education, error) {
	from := time.Now().AddDate(-6-f.rand.Intn(10), 0, 0)
	entry := &models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		FromDate:     from,
		ToDate:       from.AddDate(4, 0, 0),
		Description:  gofakeit.Sentence(10),
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreatePost persists a post authored by the user, with the byline
// snapshot taken the same way the API does it.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:       user.ID,
		Text:         gofakeit.Paragraph(1, 2, 8, " "),
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		CreatedAt:    time.Now().Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour),
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateLike persists a like, ignoring duplicates so random seeding can
// pick the same user/post pair twice.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{PostID: post.ID, UserID: user.ID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

// CreateComment persists a comment with the commenter's byline snapshot.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:       post.ID,
		UserID:       user.ID,
		Text:         gofakeit.Sentence(10),
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (f *Factory) pickSkills(n int) []string {
	picked := make([]string, 0, n)
	for _, i := range f.rand.Perm(len(skillPool))[:n] {
		picked = append(picked, skillPool[i])
	}
	return picked
}
