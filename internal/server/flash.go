package server

import (
	"net/url"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// One-shot flash messages carried in a cookie between a redirect and the
// next render.
const flashCookie = "inkwell_flash"

const (
	flashNotice = "notice"
	flashError  = "error"
)

func setFlash(c *fiber.Ctx, category, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message.
func popFlash(c *fiber.Ctx) (category, message string) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return "", ""
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", ""
	}
	parts := strings.SplitN(decoded, "|", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// render invokes the template with the session principal and any pending
// flash merged into the bind.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}

	user := currentUser(c)
	bind["CurrentUser"] = user
	bind["IsAdmin"] = s.authService.IsAdmin(user)

	// An explicit flash in the bind wins over a cookie-carried one.
	if _, ok := bind["FlashMessage"]; !ok {
		category, message := popFlash(c)
		bind["FlashCategory"] = category
		bind["FlashMessage"] = message
	}

	return c.Render(name, bind)
}

// redirectTarget resolves where to send the visitor after an action,
// preferring an explicit "next" value, then the referrer, always confined to
// this site's own host.
func (s *Server) redirectTarget(c *fiber.Ctx) string {
	target := validation.SafeRedirectTarget(s.config.SiteURL,
		c.FormValue("next"),
		c.Query("next"),
		c.Get(fiber.HeaderReferer),
	)
	if target == "" {
		return "/"
	}
	return target
}

// flashAndRedirect is the common recovery path for expected errors on form
// posts: surface the message, send the visitor somewhere sensible.
func flashAndRedirect(c *fiber.Ctx, category, message, location string) error {
	setFlash(c, category, message)
	return c.Redirect(location, fiber.StatusSeeOther)
}

// userMessage extracts a user-presentable message from an application error.
func userMessage(err error) string {
	if appErr, ok := err.(*models.AppError); ok {
		return appErr.Message
	}
	return "something went wrong, please try again"
}
