package server

import (
	"fmt"
	"strings"

	"mingle/internal/middleware"
	"mingle/internal/models"
	"mingle/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ShowNewComment renders the comment form for a post.
func (s *Server) ShowNewComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		s.flashError(c, "That post does not exist.")
		return c.Redirect("/", fiber.StatusFound)
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			s.flashError(c, "That post does not exist.")
		} else {
			middleware.Logger.Error("post lookup failed", "error", err.Error(), "post_id", id)
			s.flashError(c, models.UserMessage(err))
		}
		return c.Redirect("/", fiber.StatusFound)
	}

	return s.render(c, "comments/new", fiber.Map{
		"Title": "New Comment",
		"Post":  post,
	})
}

// CreateComment stores a comment on a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		s.flashError(c, "That post does not exist.")
		return c.Redirect("/", fiber.StatusFound)
	}

	if _, err := s.postRepo.GetByID(c.Context(), id); err != nil {
		if models.IsNotFound(err) {
			s.flashError(c, "That post does not exist.")
		} else {
			middleware.Logger.Error("post lookup failed", "error", err.Error(), "post_id", id)
			s.flashError(c, models.UserMessage(err))
		}
		return c.Redirect("/", fiber.StatusFound)
	}

	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		s.flashError(c, "Your comment needs some content!")
		return c.Redirect(fmt.Sprintf("/post/%d/comments/new", id), fiber.StatusFound)
	}

	comment := &models.Comment{Content: content, UserID: viewerID(c), PostID: id}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		middleware.Logger.Error("comment create failed", "error", err.Error(), "post_id", id)
		s.flashError(c, models.UserMessage(err))
		return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusFound)
	}

	observability.CommentsCreatedTotal.Inc()
	s.flashSuccess(c, "Comment added!")
	return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusFound)
}
