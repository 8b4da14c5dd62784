package server

import (
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionCookie names the HTTP-only cookie carrying the session token. The
// session is stateless: the signed token is the only server-issued proof of
// authentication.
const sessionCookie = "inkwell_session"

const (
	tokenIssuer   = "inkwell"
	tokenAudience = "inkwell-web"
	sessionTTL    = 7 * 24 * time.Hour
)

// generateToken creates a signed session token for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// establishSession mints a token for the user and sets the session cookie.
func (s *Server) establishSession(c *fiber.Ctx, user *models.User) error {
	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// clearSession expires the session cookie. Idempotent: clearing an absent or
// invalid session is not an error.
func (s *Server) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// parseSession extracts and validates the session token from the request
// cookie, returning the user ID it names.
func (s *Server) parseSession(c *fiber.Ctx) (uint, bool) {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// loadCurrentUser resolves the session principal, if any, for every request.
// A stale session (valid token but deleted user) is treated as anonymous.
func (s *Server) loadCurrentUser(c *fiber.Ctx) error {
	userID, ok := s.parseSession(c)
	if !ok {
		return c.Next()
	}

	user, err := s.authService.CurrentUser(c.Context(), userID)
	if err != nil || user == nil {
		return c.Next()
	}

	c.Locals("userID", user.ID)
	c.Locals("currentUser", user)
	return c.Next()
}

// currentUser returns the authenticated principal for this request, or nil.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// requireLogin redirects anonymous visitors to the login form.
func (s *Server) requireLogin(c *fiber.Ctx) error {
	if currentUser(c) == nil {
		setFlash(c, flashNotice, "Please log in to continue.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// adminOnly gates administrative routes. Anyone who is not the designated
// admin gets a 403, authenticated or not.
func (s *Server) adminOnly(c *fiber.Ctx) error {
	if !s.authService.IsAdmin(currentUser(c)) {
		return models.NewForbiddenError("administrator access required")
	}
	return c.Next()
}
