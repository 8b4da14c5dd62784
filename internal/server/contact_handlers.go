package server

import (
	"log/slog"

	"inkwell/internal/mailer"
	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// About handles GET /about.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "views/about", fiber.Map{
		"Title": "About",
	})
}

// ContactForm handles GET /contact.
func (s *Server) ContactForm(c *fiber.Ctx) error {
	return s.render(c, "views/contact", fiber.Map{
		"Title": "Contact",
	})
}

// Contact handles POST /contact: forwards the submission to the configured
// recipient by email and re-renders the page with a confirmation.
func (s *Server) Contact(c *fiber.Ctx) error {
	msg := mailer.ContactMessage{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Message: c.FormValue("message"),
	}

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return s.render(c.Status(fiber.StatusBadRequest), "views/contact", fiber.Map{
			"Title":         "Contact",
			"Name":          msg.Name,
			"Email":         msg.Email,
			"Phone":         msg.Phone,
			"Message":       msg.Message,
			"FlashCategory": flashError,
			"FlashMessage":  "Name, email and message are required.",
		})
	}

	if err := s.mailer.SendContactMessage(c.Context(), msg); err != nil {
		observability.ContactMessagesTotal.WithLabelValues("failed").Inc()
		middleware.Logger.Error("contact mail delivery failed", slog.String("error", err.Error()))
		return s.render(c.Status(fiber.StatusInternalServerError), "views/contact", fiber.Map{
			"Title":         "Contact",
			"Name":          msg.Name,
			"Email":         msg.Email,
			"Phone":         msg.Phone,
			"Message":       msg.Message,
			"FlashCategory": flashError,
			"FlashMessage":  "Sorry, your message could not be sent right now.",
		})
	}

	observability.ContactMessagesTotal.WithLabelValues("sent").Inc()
	return s.render(c, "views/contact", fiber.Map{
		"Title":   "Contact",
		"MsgSent": true,
	})
}
