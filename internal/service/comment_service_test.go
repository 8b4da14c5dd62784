package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a comment on an existing post", func(t *testing.T) {
		var stored *models.Comment
		comments := &stubCommentRepo{
			CreateFn: func(ctx context.Context, comment *models.Comment) error {
				comment.ID = 11
				stored = comment
				return nil
			},
			GetByIDFn: func(ctx context.Context, id uint) (*models.Comment, error) {
				return stored, nil
			},
		}
		svc := NewCommentService(comments, &stubPostRepo{})

		comment, err := svc.AddComment(ctx, AddCommentInput{
			PostID:   2,
			AuthorID: 3,
			Body:     "Lovely piece.",
		})
		require.NoError(t, err)

		assert.Equal(t, uint(11), comment.ID)
		assert.Equal(t, uint(2), comment.PostID)
		assert.Equal(t, uint(3), comment.AuthorID)
	})

	t.Run("rejects anonymous authors", func(t *testing.T) {
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.AddComment(ctx, AddCommentInput{PostID: 2, AuthorID: 0, Body: "hi"})
		require.Error(t, err)
		assert.Equal(t, models.CodeUnauthenticated, models.CodeOf(err))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.AddComment(ctx, AddCommentInput{PostID: 2, AuthorID: 3, Body: "   "})
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, models.CodeOf(err))
	})

	t.Run("rejects overlong body", func(t *testing.T) {
		svc := NewCommentService(&stubCommentRepo{}, &stubPostRepo{})

		_, err := svc.AddComment(ctx, AddCommentInput{
			PostID:   2,
			AuthorID: 3,
			Body:     strings.Repeat("c", 10001),
		})
		require.Error(t, err)
		assert.Equal(t, models.CodeValidation, models.CodeOf(err))
	})

	t.Run("rejects comments on a missing post", func(t *testing.T) {
		posts := &stubPostRepo{
			GetByIDFn: func(ctx context.Context, id uint) (*models.BlogPost, error) {
				return nil, models.NewNotFoundError("Post", id)
			},
		}
		comments := &stubCommentRepo{
			CreateFn: func(ctx context.Context, comment *models.Comment) error {
				t.Fatal("comment should not be persisted")
				return nil
			},
		}
		svc := NewCommentService(comments, posts)

		_, err := svc.AddComment(ctx, AddCommentInput{PostID: 99, AuthorID: 3, Body: "hi"})
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the post's comments", func(t *testing.T) {
		comments := &stubCommentRepo{
			ListByPostFn: func(ctx context.Context, postID uint) ([]*models.Comment, error) {
				return []*models.Comment{{ID: 1, PostID: postID}, {ID: 2, PostID: postID}}, nil
			},
		}
		svc := NewCommentService(comments, &stubPostRepo{})

		got, err := svc.ListComments(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("missing post surfaces not found", func(t *testing.T) {
		posts := &stubPostRepo{
			GetByIDFn: func(ctx context.Context, id uint) (*models.BlogPost, error) {
				return nil, models.NewNotFoundError("Post", id)
			},
		}
		svc := NewCommentService(&stubCommentRepo{}, posts)

		_, err := svc.ListComments(ctx, 99)
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}
