package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

// CommentService creates comments. Comments are never edited and are deleted
// only as a cascade of post deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	PostID   uint
	AuthorID uint
	Body     string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment persists a comment by an authenticated user on an existing
// post. The routing layer redirects anonymous visitors to the login form
// before this is reached; the zero-author check here keeps the invariant
// even so.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthenticatedError("you need to login or register to comment")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("comment body is required")
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:     in.Body,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.CommentsCreatedTotal.Inc()
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments in creation order.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
