package server

import (
	"mingle/internal/middleware"
	"mingle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AllUsers lists every registered user.
func (s *Server) AllUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.Context())
	if err != nil {
		middleware.Logger.Error("user list failed", "error", err.Error())
		s.flashError(c, models.UserMessage(err))
		return c.Redirect("/", fiber.StatusFound)
	}

	return s.render(c, "users/users", fiber.Map{
		"Title": "All Users",
		"Users": users,
	})
}

// Profile renders a user's page: their posts and friends, and, when the
// viewer is looking at their own profile, the pending friend requests.
func (s *Server) Profile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		s.flashError(c, "That user does not exist.")
		return c.Redirect("/user/all", fiber.StatusFound)
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			s.flashError(c, "That user does not exist.")
		} else {
			middleware.Logger.Error("user lookup failed", "error", err.Error(), "user_id", id)
			s.flashError(c, models.UserMessage(err))
		}
		return c.Redirect("/user/all", fiber.StatusFound)
	}

	posts, err := s.postRepo.ListByUser(c.Context(), id)
	if err != nil {
		middleware.Logger.Error("post list failed", "error", err.Error(), "user_id", id)
	}

	friends, err := s.friendRepo.GetFriends(c.Context(), id)
	if err != nil {
		middleware.Logger.Error("friend list failed", "error", err.Error(), "user_id", id)
	}

	bind := fiber.Map{
		"Title":   user.FullName(),
		"Profile": user,
		"Posts":   posts,
		"Friends": friends,
		"IsOwner": viewerID(c) == id,
	}

	// Pending requests are the owner's business only.
	if viewerID(c) == id {
		pending, err := s.friendRepo.GetPendingRequests(c.Context(), id)
		if err != nil {
			middleware.Logger.Error("pending requests failed", "error", err.Error(), "user_id", id)
		} else {
			bind["PendingRequests"] = pending
		}
	}

	return s.render(c, "users/user", bind)
}
