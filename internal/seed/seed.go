// Package seed provides helpers to create demo data for development. The
// admin account is created first so it receives ID 1, the designated
// administrator under the default configuration.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	AdminEmail    string
	AdminPassword string
	Readers       int
	Posts         int
}

// DefaultOptions returns a small, sensible demo data set.
func DefaultOptions() Options {
	return Options{
		AdminEmail:    "admin@example.com",
		AdminPassword: "changeme-admin",
		Readers:       4,
		Posts:         6,
	}
}

// Run seeds the database. It refuses to run against a database that already
// has users so it never races with real registrations.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("database already has %d users; refusing to seed", count)
	}

	admin, err := createUser(db, "Site Admin", opts.AdminEmail, opts.AdminPassword)
	if err != nil {
		return err
	}

	readers := make([]*models.User, 0, opts.Readers)
	for i := 0; i < opts.Readers; i++ {
		name := gofakeit.Name()
		reader, err := createUser(db, name, gofakeit.Email(), gofakeit.Password(true, true, true, false, false, 12))
		if err != nil {
			return err
		}
		readers = append(readers, reader)
	}

	for i := 0; i < opts.Posts; i++ {
		post := &models.BlogPost{
			Title:    fmt.Sprintf("%s #%d", gofakeit.Sentence(4), i+1),
			Subtitle: gofakeit.Sentence(6),
			Body:     gofakeit.Paragraph(3, 4, 8, "\n\n"),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", gofakeit.UUID()),
			AuthorID: admin.ID,
			Date:     time.Now().AddDate(0, 0, -rand.Intn(90)).Format(models.PostDateLayout),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("creating post: %w", err)
		}

		for _, reader := range readers {
			if rand.Intn(2) == 0 {
				continue
			}
			comment := &models.Comment{
				Body:     gofakeit.Sentence(10),
				AuthorID: reader.ID,
				PostID:   post.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	return nil
}

func createUser(db *gorm.DB, name, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating user %s: %w", email, err)
	}
	return user, nil
}
