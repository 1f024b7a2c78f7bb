package server

import (
	"errors"

	"mingle/internal/middleware"
	"mingle/internal/models"
	"mingle/internal/observability"
	"mingle/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// AddFriend sends a friend request from the viewer to the user in the URL.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	targetID, err := paramID(c, "id")
	if err != nil {
		s.flashError(c, "That user does not exist.")
		return redirectBack(c)
	}

	me := viewerID(c)
	if targetID == me {
		s.flashError(c, "You can't add yourself as a friend!")
		return redirectBack(c)
	}

	if _, err := s.userRepo.GetByID(c.Context(), targetID); err != nil {
		if models.IsNotFound(err) {
			s.flashError(c, "That user does not exist.")
		} else {
			middleware.Logger.Error("user lookup failed", "error", err.Error(), "user_id", targetID)
			s.flashError(c, models.UserMessage(err))
		}
		return redirectBack(c)
	}

	existing, err := s.friendRepo.GetBetweenUsers(c.Context(), me, targetID)
	if err != nil {
		middleware.Logger.Error("friendship lookup failed", "error", err.Error())
		s.flashError(c, models.UserMessage(err))
		return redirectBack(c)
	}
	if existing != nil {
		if existing.Status == models.FriendshipStatusAccepted {
			s.flashError(c, "That user is already in your friends list!")
		} else {
			s.flashError(c, "You already sent a friend request to that user!")
		}
		return redirectBack(c)
	}

	friendship := &models.Friendship{
		RequesterID: me,
		AddresseeID: targetID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(c.Context(), friendship); err != nil {
		middleware.Logger.Error("friend request failed", "error", err.Error())
		s.flashError(c, models.UserMessage(err))
		return redirectBack(c)
	}

	observability.FriendRequestsTotal.WithLabelValues("sent").Inc()
	s.flashSuccess(c, "Friend request sent!")
	return redirectBack(c)
}

// AcceptFriend accepts a pending request addressed to the viewer.
func (s *Server) AcceptFriend(c *fiber.Ctx) error {
	requesterID, err := paramID(c, "id")
	if err != nil {
		s.flashError(c, "That user does not exist.")
		return redirectBack(c)
	}

	if err := s.friendRepo.Accept(c.Context(), requesterID, viewerID(c)); err != nil {
		if errors.Is(err, repository.ErrNoPendingRequest) {
			s.flashError(c, "There is no friend request from that user.")
		} else {
			middleware.Logger.Error("accept failed", "error", err.Error())
			s.flashError(c, models.UserMessage(err))
		}
		return redirectBack(c)
	}

	observability.FriendRequestsTotal.WithLabelValues("accepted").Inc()
	s.flashSuccess(c, "Friend request accepted!")
	return redirectBack(c)
}

// DeclineFriend declines a pending request addressed to the viewer.
func (s *Server) DeclineFriend(c *fiber.Ctx) error {
	requesterID, err := paramID(c, "id")
	if err != nil {
		s.flashError(c, "That user does not exist.")
		return redirectBack(c)
	}

	if err := s.friendRepo.Decline(c.Context(), requesterID, viewerID(c)); err != nil {
		if errors.Is(err, repository.ErrNoPendingRequest) {
			s.flashError(c, "There is no friend request from that user.")
		} else {
			middleware.Logger.Error("decline failed", "error", err.Error())
			s.flashError(c, models.UserMessage(err))
		}
		return redirectBack(c)
	}

	observability.FriendRequestsTotal.WithLabelValues("declined").Inc()
	s.flashSuccess(c, "Friend request declined.")
	return redirectBack(c)
}
