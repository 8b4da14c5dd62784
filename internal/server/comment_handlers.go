package server

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /post/:postID. Anonymous visitors are sent to the
// login form instead of persisting anything.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	user := currentUser(c)
	if user == nil {
		return flashAndRedirect(c, flashNotice,
			"You need to login or register to comment.", "/login")
	}

	in := service.AddCommentInput{
		PostID:   postID,
		AuthorID: user.ID,
		Body:     c.FormValue("body"),
	}

	if _, err := s.commentService.AddComment(c.Context(), in); err != nil {
		switch models.CodeOf(err) {
		case models.CodeValidation:
			return flashAndRedirect(c, flashError, userMessage(err),
				fmt.Sprintf("/post/%d", postID))
		default:
			return err
		}
	}

	return c.Redirect(fmt.Sprintf("/post/%d", postID), fiber.StatusSeeOther)
}
