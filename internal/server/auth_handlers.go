package server

import (
	"net/url"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterForm handles GET /register.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.render(c, "views/register", fiber.Map{
		"Title": "Register",
	})
}

// Register handles POST /register. A successful registration immediately
// establishes a logged-in session; there is no separate login step.
func (s *Server) Register(c *fiber.Ctx) error {
	in := service.RegisterInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, err := s.authService.Register(c.Context(), in)
	if err != nil {
		switch models.CodeOf(err) {
		case models.CodeDuplicateEmail:
			observability.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
			setFlash(c, flashNotice, "This email has already been signed up, try login instead.")
			return c.Redirect("/login?exist="+url.QueryEscape(in.Email), fiber.StatusSeeOther)
		case models.CodeValidation:
			observability.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return s.render(c.Status(fiber.StatusBadRequest), "views/register", fiber.Map{
				"Title":         "Register",
				"Name":          in.Name,
				"Email":         in.Email,
				"FlashCategory": flashError,
				"FlashMessage":  userMessage(err),
			})
		default:
			return err
		}
	}

	if err := s.establishSession(c, user); err != nil {
		return err
	}

	observability.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.Redirect("/", fiber.StatusSeeOther)
}

// LoginForm handles GET /login. The optional "exist" query parameter
// pre-fills the email field after a duplicate registration attempt.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.render(c, "views/login", fiber.Map{
		"Title": "Log In",
		"Email": c.Query("exist"),
	})
}

// Login handles POST /login.
func (s *Server) Login(c *fiber.Ctx) error {
	in := service.LoginInput{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, err := s.authService.Login(c.Context(), in)
	if err != nil {
		switch models.CodeOf(err) {
		case models.CodeUserNotFound:
			observability.LoginsTotal.WithLabelValues("unknown_user").Inc()
			return s.renderLoginError(c, in.Email, "User with given email address does not exist.")
		case models.CodeIncorrectPassword:
			observability.LoginsTotal.WithLabelValues("bad_password").Inc()
			return s.renderLoginError(c, in.Email, "Incorrect password!")
		default:
			return err
		}
	}

	if err := s.establishSession(c, user); err != nil {
		return err
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(s.redirectTarget(c), fiber.StatusSeeOther)
}

func (s *Server) renderLoginError(c *fiber.Ctx, email, message string) error {
	return s.render(c.Status(fiber.StatusUnauthorized), "views/login", fiber.Map{
		"Title":         "Log In",
		"Email":         email,
		"FlashCategory": flashError,
		"FlashMessage":  message,
	})
}

// Logout handles GET /logout. Clearing an already-dead session is fine.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
