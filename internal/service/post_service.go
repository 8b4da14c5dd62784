package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const (
	maxTitleLen    = 250
	maxSubtitleLen = 250
	maxBodyLen     = 50000
)

// PostService implements post CRUD. Admin gating happens at the call site;
// this service only enforces data invariants.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type UpdatePostInput struct {
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post in creation order.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.BlogPost, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns one post with its author and comments eagerly loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost publishes a new post. The display date is stamped at creation
// and never changes afterwards, even on edit.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.BlogPost, error) {
	if err := validatePostFields(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}
	if in.AuthorID == 0 {
		return nil, models.NewUnauthenticatedError("a post must have an author")
	}

	if existing, err := s.postRepo.GetByTitle(ctx, in.Title); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewDuplicateTitleError(in.Title)
	}

	post := &models.BlogPost{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		AuthorID: in.AuthorID,
		Date:     time.Now().Format(models.PostDateLayout),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreatedTotal.Inc()
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost overwrites a post's editable fields. The author is immutable
// after creation and is deliberately absent from the update set.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.BlogPost, error) {
	if err := validatePostFields(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	if existing, err := s.postRepo.GetByTitle(ctx, in.Title); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != in.PostID {
		return nil, models.NewDuplicateTitleError(in.Title)
	}

	err := s.postRepo.Update(ctx, in.PostID, map[string]interface{}{
		"title":     in.Title,
		"subtitle":  in.Subtitle,
		"body":      in.Body,
		"image_url": in.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeletePost removes a post and cascades to its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

func validatePostFields(title, subtitle, body, imageURL string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("title too long (max 250 characters)")
	}
	if strings.TrimSpace(subtitle) == "" {
		return models.NewValidationError("subtitle is required")
	}
	if len(subtitle) > maxSubtitleLen {
		return models.NewValidationError("subtitle too long (max 250 characters)")
	}
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("body is required")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("body too long (max 50000 characters)")
	}
	if err := validation.ValidateImageURL(imageURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}
