package service

import (
	"context"

	"inkwell/internal/models"
)

// stubUserRepo implements repository.UserRepository with overridable
// function fields. Unset fields return zero values.
type stubUserRepo struct {
	GetByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*models.User, error)
	CreateFn     func(ctx context.Context, user *models.User) error
	CountFn      func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.GetByIDFn == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return s.GetByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.GetByEmailFn == nil {
		return nil, nil
	}
	return s.GetByEmailFn(ctx, email)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.CreateFn == nil {
		return nil
	}
	return s.CreateFn(ctx, user)
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	if s.CountFn == nil {
		return 0, nil
	}
	return s.CountFn(ctx)
}

type stubPostRepo struct {
	CreateFn     func(ctx context.Context, post *models.BlogPost) error
	GetByIDFn    func(ctx context.Context, id uint) (*models.BlogPost, error)
	GetByTitleFn func(ctx context.Context, title string) (*models.BlogPost, error)
	ListFn       func(ctx context.Context) ([]*models.BlogPost, error)
	UpdateFn     func(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteFn     func(ctx context.Context, id uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.BlogPost) error {
	if s.CreateFn == nil {
		return nil
	}
	return s.CreateFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	if s.GetByIDFn == nil {
		return &models.BlogPost{ID: id}, nil
	}
	return s.GetByIDFn(ctx, id)
}

func (s *stubPostRepo) GetByTitle(ctx context.Context, title string) (*models.BlogPost, error) {
	if s.GetByTitleFn == nil {
		return nil, nil
	}
	return s.GetByTitleFn(ctx, title)
}

func (s *stubPostRepo) List(ctx context.Context) ([]*models.BlogPost, error) {
	if s.ListFn == nil {
		return nil, nil
	}
	return s.ListFn(ctx)
}

func (s *stubPostRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if s.UpdateFn == nil {
		return nil
	}
	return s.UpdateFn(ctx, id, fields)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	if s.DeleteFn == nil {
		return nil
	}
	return s.DeleteFn(ctx, id)
}

type stubCommentRepo struct {
	CreateFn     func(ctx context.Context, comment *models.Comment) error
	GetByIDFn    func(ctx context.Context, id uint) (*models.Comment, error)
	ListByPostFn func(ctx context.Context, postID uint) ([]*models.Comment, error)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.CreateFn == nil {
		return nil
	}
	return s.CreateFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.GetByIDFn == nil {
		return &models.Comment{ID: id}, nil
	}
	return s.GetByIDFn(ctx, id)
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.ListByPostFn == nil {
		return nil, nil
	}
	return s.ListByPostFn(ctx, postID)
}
