package server

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET / and lists every post in creation order.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, "views/index", fiber.Map{
		"Title": "Inkwell",
		"Posts": posts,
	})
}

// ShowPost handles GET /post/:postID: the post with its comments.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return err
	}

	return s.render(c, "views/post", fiber.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

// NewPostForm handles GET /new-post (admin only).
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	return s.render(c, "views/make-post", fiber.Map{
		"Title":   "New Post",
		"Heading": "New Post",
		"Action":  "/new-post",
	})
}

// CreatePost handles POST /new-post (admin only). The acting admin becomes
// the post's author; the creation date is stamped by the service.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	in := service.CreatePostInput{
		AuthorID: currentUser(c).ID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("img_url"),
	}

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		switch models.CodeOf(err) {
		case models.CodeDuplicateTitle, models.CodeValidation:
			return s.render(c.Status(httpStatusForError(err)), "views/make-post", fiber.Map{
				"Title":         "New Post",
				"Heading":       "New Post",
				"Action":        "/new-post",
				"PostTitle":     in.Title,
				"Subtitle":      in.Subtitle,
				"Body":          in.Body,
				"ImageURL":      in.ImageURL,
				"FlashCategory": flashError,
				"FlashMessage":  userMessage(err),
			})
		default:
			return err
		}
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}

// EditPostForm handles GET /edit-post/:postID (admin only), pre-filled with
// the post's current fields.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return err
	}

	return s.render(c, "views/make-post", fiber.Map{
		"Title":     "Edit Post",
		"Heading":   "Edit Post",
		"Action":    fmt.Sprintf("/edit-post/%d", post.ID),
		"PostTitle": post.Title,
		"Subtitle":  post.Subtitle,
		"Body":      post.Body,
		"ImageURL":  post.ImageURL,
	})
}

// EditPost handles POST /edit-post/:postID (admin only). The author and the
// display date are immutable; only the content fields are overwritten.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	in := service.UpdatePostInput{
		PostID:   postID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("img_url"),
	}

	post, err := s.postService.UpdatePost(c.Context(), in)
	if err != nil {
		switch models.CodeOf(err) {
		case models.CodeDuplicateTitle, models.CodeValidation:
			return s.render(c.Status(httpStatusForError(err)), "views/make-post", fiber.Map{
				"Title":         "Edit Post",
				"Heading":       "Edit Post",
				"Action":        fmt.Sprintf("/edit-post/%d", postID),
				"PostTitle":     in.Title,
				"Subtitle":      in.Subtitle,
				"Body":          in.Body,
				"ImageURL":      in.ImageURL,
				"FlashCategory": flashError,
				"FlashMessage":  userMessage(err),
			})
		default:
			return err
		}
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:postID (admin only). Comments on the post
// are removed in the same transaction.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := s.postService.DeletePost(c.Context(), postID); err != nil {
		return err
	}

	setFlash(c, flashNotice, "Post deleted.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("postID")
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("Post", c.Params("postID"))
	}
	return uint(id), nil
}
