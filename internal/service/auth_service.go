// Package service implements the application's business rules on top of the
// repository layer. Services validate input and enforce domain invariants;
// they do not perform HTTP-level authorization, which belongs to the routing
// layer.
package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and resolves authenticated principals.
type AuthService struct {
	userRepo repository.UserRepository
	// adminUserID designates the single privileged account (configuration,
	// default 1 = first registered user).
	adminUserID uint
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, adminUserID uint) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		adminUserID: adminUserID,
	}
}

// Register creates a new account and returns it. The caller establishes the
// session immediately; registration doubles as the first login. Fails with
// DUPLICATE_EMAIL when the address is already registered so the caller can
// send the visitor to the login form instead.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError(in.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns the account. The bcrypt
// comparison is constant-time relative to the hash output.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUserNotFoundError(in.Email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewIncorrectPasswordError()
	}

	return user, nil
}

// CurrentUser resolves the principal for a session's user ID.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// IsAdmin reports whether the user is the designated administrator.
// Anonymous (nil) is never admin.
func (s *AuthService) IsAdmin(user *models.User) bool {
	return user != nil && user.ID == s.adminUserID
}
