// Package seed fills the database with realistic fake data for local
// development and demos.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaushiks90/DevConnector/internal/gravatar"
	"github.com/kaushiks90/DevConnector/internal/models"
	"github.com/kaushiks90/DevConnector/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	Password        string
}

// DefaultOptions returns a small but representative dataset.
func DefaultOptions() Options {
	return Options{
		Users:           10,
		PostsPerUser:    3,
		CommentsPerPost: 2,
		Password:        "password123",
	}
}

var statuses = []string{
	"Developer",
	"Junior Developer",
	"Senior Developer",
	"Manager",
	"Student or Learning",
	"Instructor or Teacher",
	"Intern",
}

// Run generates users with profiles and posts. All accounts share the same
// password so any of them can be used to log in during development.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		email := strings.ToLower(gofakeit.Email())
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    email,
			Password: string(hash),
			Avatar:   gravatar.URL(email),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if models.IsValidation(err) {
				continue // random email collision, skip
			}
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)

		profile := &models.Profile{
			UserID: user.ID,
			Handle: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), user.ID),
			Status: statuses[gofakeit.Number(0, len(statuses)-1)],
			Skills: []string{
				gofakeit.ProgrammingLanguage(),
				gofakeit.ProgrammingLanguage(),
				gofakeit.ProgrammingLanguage(),
			},
			Company:  gofakeit.Company(),
			Location: gofakeit.City(),
			Bio:      gofakeit.Sentence(12),
			Website:  gofakeit.URL(),
			Social: models.Social{
				Twitter: gofakeit.URL(),
			},
		}
		if err := profileRepo.Save(ctx, profile); err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}

		exp := &models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        gofakeit.Date().Format("2006-01-02"),
			Current:     true,
			Description: gofakeit.Sentence(10),
		}
		if err := profileRepo.AddExperience(ctx, profile, exp); err != nil {
			return fmt.Errorf("creating experience: %w", err)
		}

		edu := &models.Education{
			School:       fmt.Sprintf("%s University", gofakeit.City()),
			Degree:       "BSc",
			FieldOfStudy: "Computer Science",
			From:         gofakeit.Date().Format("2006-01-02"),
			Description:  gofakeit.Sentence(8),
		}
		if err := profileRepo.AddEducation(ctx, profile, edu); err != nil {
			return fmt.Errorf("creating education: %w", err)
		}
	}

	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := &models.Post{
				Text:   gofakeit.Paragraph(1, 2, 12, " "),
				Name:   user.Name,
				Avatar: user.Avatar,
				UserID: user.ID,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				return fmt.Errorf("creating post: %w", err)
			}

			for j := 0; j < opts.CommentsPerPost && j < len(users); j++ {
				commenter := users[gofakeit.Number(0, len(users)-1)]
				comment := &models.Comment{
					PostID: post.ID,
					Text:   gofakeit.Sentence(10),
					Name:   commenter.Name,
					Avatar: commenter.Avatar,
					UserID: commenter.ID,
				}
				if err := postRepo.AddComment(ctx, comment); err != nil {
					return fmt.Errorf("creating comment: %w", err)
				}
			}

			liker := users[gofakeit.Number(0, len(users)-1)]
			if err := postRepo.Like(ctx, liker.ID, post.ID); err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
	}

	return nil
}
