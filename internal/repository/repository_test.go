package repository

import (
	"context"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "$2a$04$notarealhashnotarealhashnotarea",
		Name:     "Reader",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.BlogPost {
	t.Helper()

	post := &models.BlogPost{
		Title:    title,
		Subtitle: "sub",
		Date:     "January 02, 2026",
		Body:     "body",
		ImageURL: "https://picsum.photos/800/400",
		AuthorID: authorID,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	t.Run("create and fetch", func(t *testing.T) {
		user := seedUser(t, db, "a@example.com")

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate email maps to the domain error", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{
			Email:    "a@example.com",
			Password: "hash",
			Name:     "Other",
		})
		require.Error(t, err)
		assert.Equal(t, models.CodeDuplicateEmail, models.CodeOf(err))
	})

	t.Run("missing email returns nil without error", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := seedUser(t, db, "author@example.com")

	t.Run("duplicate title maps to the domain error", func(t *testing.T) {
		seedPost(t, db, author.ID, "Unique Title")
		err := repo.Create(ctx, &models.BlogPost{
			Title:    "Unique Title",
			Subtitle: "sub",
			Date:     "January 02, 2026",
			Body:     "body",
			ImageURL: "https://picsum.photos/800/400",
			AuthorID: author.ID,
		})
		require.Error(t, err)
		assert.Equal(t, models.CodeDuplicateTitle, models.CodeOf(err))
	})

	t.Run("get by id preloads author and ordered comments", func(t *testing.T) {
		post := seedPost(t, db, author.ID, "With Comments")
		commenter := seedUser(t, db, "commenter@example.com")

		commentRepo := NewCommentRepository(db)
		for _, body := range []string{"first", "second", "third"} {
			require.NoError(t, commentRepo.Create(ctx, &models.Comment{
				Body:     body,
				AuthorID: commenter.ID,
				PostID:   post.ID,
			}))
		}

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "author@example.com", got.Author.Email)
		require.Len(t, got.Comments, 3)
		assert.Equal(t, "first", got.Comments[0].Body)
		assert.Equal(t, "third", got.Comments[2].Body)
		assert.Equal(t, "commenter@example.com", got.Comments[0].Author.Email)
	})

	t.Run("list returns posts in creation order", func(t *testing.T) {
		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(posts), 2)
		for i := 1; i < len(posts); i++ {
			assert.Less(t, posts[i-1].ID, posts[i].ID)
		}
	})

	t.Run("update overwrites only the given columns", func(t *testing.T) {
		post := seedPost(t, db, author.ID, "Before Edit")

		err := repo.Update(ctx, post.ID, map[string]interface{}{
			"title":     "After Edit",
			"subtitle":  "new sub",
			"body":      "new body",
			"image_url": "https://picsum.photos/900/500",
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "After Edit", got.Title)
		assert.Equal(t, post.Date, got.Date)
		assert.Equal(t, author.ID, got.AuthorID)
	})

	t.Run("update of a missing post is not found", func(t *testing.T) {
		err := repo.Update(ctx, 9999, map[string]interface{}{"title": "x"})
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})

	t.Run("delete cascades to comments", func(t *testing.T) {
		post := seedPost(t, db, author.ID, "Doomed Post")
		commentRepo := NewCommentRepository(db)
		require.NoError(t, commentRepo.Create(ctx, &models.Comment{
			Body:     "soon gone",
			AuthorID: author.ID,
			PostID:   post.ID,
		}))

		require.NoError(t, repo.Delete(ctx, post.ID))

		_, err := repo.GetByID(ctx, post.ID)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))

		left, err := commentRepo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("delete of a missing post is not found", func(t *testing.T) {
		err := repo.Delete(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.com")
	post := seedPost(t, db, author.ID, "Commented Post")
	repo := NewCommentRepository(db)

	t.Run("create and fetch with author", func(t *testing.T) {
		comment := &models.Comment{Body: "hello", AuthorID: author.ID, PostID: post.ID}
		require.NoError(t, repo.Create(ctx, comment))

		got, err := repo.GetByID(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Body)
		assert.Equal(t, "author@example.com", got.Author.Email)
	})

	t.Run("list by post in creation order", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Comment{Body: "later", AuthorID: author.ID, PostID: post.ID}))

		got, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "hello", got[0].Body)
		assert.Equal(t, "later", got[1].Body)
	})

	t.Run("missing comment is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}
