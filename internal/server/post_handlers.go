package server

import (
	"strings"

	"mingle/internal/middleware"
	"mingle/internal/models"
	"mingle/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Index renders the home feed. Anonymous visitors are sent to the login
// page without a flash; the home page is not an action, just a door.
func (s *Server) Index(c *fiber.Ctx) error {
	ident, err := s.sessions.Get(c.Context(), s.sid(c))
	if err != nil {
		return c.Redirect("/user/login", fiber.StatusFound)
	}

	posts, err := s.feed.Feed(c.Context(), ident.UserID)
	if err != nil {
		middleware.Logger.Error("feed failed", "error", err.Error(), "user_id", ident.UserID)
		s.flashError(c, models.UserMessage(err))
		posts = nil
	}

	friends, err := s.friendRepo.GetFriends(c.Context(), ident.UserID)
	if err != nil {
		middleware.Logger.Error("friend list failed", "error", err.Error(), "user_id", ident.UserID)
	}

	online, err := s.sessions.OnlineFriends(c.Context(), friends)
	if err != nil {
		middleware.Logger.Error("presence lookup failed", "error", err.Error(), "user_id", ident.UserID)
	}

	return s.render(c, "posts/index", fiber.Map{
		"Title":         "Home",
		"Posts":         posts,
		"FriendsOnline": online,
	})
}

// ShowNewPost renders the new-post form.
func (s *Server) ShowNewPost(c *fiber.Ctx) error {
	return s.render(c, "posts/new", fiber.Map{"Title": "New Post"})
}

// CreatePost stores a new post for the logged-in user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	content := strings.TrimSpace(c.FormValue("content"))
	if content == "" {
		s.flashError(c, "Your post needs some content!")
		return c.Redirect("/post/new", fiber.StatusFound)
	}

	post := &models.Post{Content: content, UserID: viewerID(c)}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		middleware.Logger.Error("post create failed", "error", err.Error(), "user_id", viewerID(c))
		s.flashError(c, models.UserMessage(err))
		return c.Redirect("/post/new", fiber.StatusFound)
	}

	observability.PostsCreatedTotal.Inc()
	s.flashSuccess(c, "Posted!")
	return c.Redirect("/", fiber.StatusFound)
}

// ShowPost renders a single post with its comments.
func (s *Server) ShowPost(c *fiber.Ctx) error {
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

	comments, err := s.commentRepo.ListByPost(c.Context(), id)
	if err != nil {
		middleware.Logger.Error("comment list failed", "error", err.Error(), "post_id", id)
	}

	return s.render(c, "posts/show", fiber.Map{
		"Title":    "Post by " + post.User.FullName(),
		"Post":     post,
		"Comments": comments,
	})
}
